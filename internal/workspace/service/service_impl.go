package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/workspace/domain"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("workspace.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *Service) Provision(ctx context.Context, req domain.ProvisionRequest) (*domain.Workspace, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	workspaceType := req.Type
	if workspaceType != domain.TypeService && workspaceType != domain.TypeOrganization {
		workspaceType = domain.TypeService
	}

	workspace := &domain.Workspace{
		ID:             s.genID.Generate(),
		Name:           name,
		Type:           workspaceType,
		OwnerID:        req.OwnerID,
		OrganizationID: req.OrganizationID,
	}
	if err := s.repo.Create(ctx, nil, workspace); err != nil {
		return nil, err
	}

	s.log.Info("workspace provisioned",
		zap.Int64("workspace_id", int64(workspace.ID)),
		zap.String("type", workspace.Type),
	)
	return workspace, nil
}

// authorize loads the workspace and rejects everyone but the owner and
// the assigned mentor.
func (s *Service) authorize(ctx context.Context, actorID, workspaceID snowflake.ID) (*domain.Workspace, error) {
	workspace, err := s.repo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace.OwnerID == actorID {
		return workspace, nil
	}
	if workspace.MentorID != nil && *workspace.MentorID == actorID {
		return workspace, nil
	}
	return nil, domain.ErrAccessDenied
}

func (s *Service) Get(ctx context.Context, actorID, workspaceID snowflake.ID) (*domain.Workspace, error) {
	return s.authorize(ctx, actorID, workspaceID)
}

func (s *Service) ListMine(ctx context.Context, actorID snowflake.ID) ([]domain.Workspace, error) {
	return s.repo.ListByOwner(ctx, actorID)
}

func (s *Service) AssignMentor(ctx context.Context, workspaceID, mentorID snowflake.ID) error {
	if _, err := s.repo.FindByID(ctx, workspaceID); err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, workspaceID, map[string]any{
		"mentor_id":  mentorID,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Service) CreatePage(ctx context.Context, actorID snowflake.ID, req domain.PageRequest) (*domain.Page, error) {
	if _, err := s.authorize(ctx, actorID, req.WorkspaceID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidName
	}
	if req.ParentID != nil {
		parent, err := s.repo.FindPage(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.WorkspaceID != req.WorkspaceID {
			return nil, domain.ErrInvalidParent
		}
	}

	page := &domain.Page{
		ID:          s.genID.Generate(),
		WorkspaceID: req.WorkspaceID,
		ParentID:    req.ParentID,
		Title:       title,
		Content:     req.Content,
		SortOrder:   req.SortOrder,
	}
	if err := s.repo.CreatePage(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Service) ListPages(ctx context.Context, actorID, workspaceID snowflake.ID) ([]domain.Page, error) {
	if _, err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}
	return s.repo.ListPages(ctx, workspaceID)
}

func (s *Service) UpdatePage(ctx context.Context, actorID snowflake.ID, req domain.PageUpdate) (*domain.Page, error) {
	if _, err := s.authorize(ctx, actorID, req.WorkspaceID); err != nil {
		return nil, err
	}
	page, err := s.repo.FindPage(ctx, req.PageID)
	if err != nil {
		return nil, err
	}
	if page.WorkspaceID != req.WorkspaceID {
		return nil, domain.ErrPageNotFound
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidName
		}
		fields["title"] = title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}

	if err := s.repo.UpdatePageFields(ctx, req.PageID, fields); err != nil {
		return nil, err
	}
	return s.repo.FindPage(ctx, req.PageID)
}

func (s *Service) DeletePage(ctx context.Context, actorID, workspaceID, pageID snowflake.ID) error {
	if _, err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return err
	}
	page, err := s.repo.FindPage(ctx, pageID)
	if err != nil {
		return err
	}
	if page.WorkspaceID != workspaceID {
		return domain.ErrPageNotFound
	}
	return s.repo.DeletePage(ctx, pageID)
}

func (s *Service) CreateTask(ctx context.Context, actorID snowflake.ID, req domain.TaskRequest) (*domain.Task, error) {
	if _, err := s.authorize(ctx, actorID, req.WorkspaceID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidName
	}

	task := &domain.Task{
		ID:          s.genID.Generate(),
		WorkspaceID: req.WorkspaceID,
		Title:       title,
		Status:      domain.TaskTodo,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) ListTasks(ctx context.Context, actorID, workspaceID snowflake.ID) ([]domain.Task, error) {
	if _, err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}
	return s.repo.ListTasks(ctx, workspaceID)
}

func (s *Service) MoveTask(ctx context.Context, actorID, workspaceID, taskID snowflake.ID, status string) (*domain.Task, error) {
	if _, err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}
	if !domain.ValidTaskStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.repo.FindTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.WorkspaceID != workspaceID {
		return nil, domain.ErrTaskNotFound
	}
	if !domain.CanTransitionTask(task.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.repo.UpdateTaskFields(ctx, taskID, map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	task.Status = status
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, actorID, workspaceID, taskID snowflake.ID) error {
	if _, err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return err
	}
	task, err := s.repo.FindTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task.WorkspaceID != workspaceID {
		return domain.ErrTaskNotFound
	}
	return s.repo.DeleteTask(ctx, taskID)
}

func (s *Service) AddFile(ctx context.Context, actorID snowflake.ID, req domain.FileRequest) (*domain.File, error) {
	if _, err := s.authorize(ctx, actorID, req.WorkspaceID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.URL) == "" {
		return nil, domain.ErrInvalidName
	}

	file := &domain.File{
		ID:          s.genID.Generate(),
		WorkspaceID: req.WorkspaceID,
		Name:        name,
		Size:        req.Size,
		URL:         strings.TrimSpace(req.URL),
	}
	if err := s.repo.CreateFile(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *Service) ListFiles(ctx context.Context, actorID, workspaceID snowflake.ID) ([]domain.File, error) {
	if _, err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}
	return s.repo.ListFiles(ctx, workspaceID)
}

func (s *Service) RemoveFile(ctx context.Context, actorID, workspaceID, fileID snowflake.ID) error {
	if _, err := s.authorize(ctx, actorID, workspaceID); err != nil {
		return err
	}
	file, err := s.repo.FindFile(ctx, fileID)
	if err != nil {
		return err
	}
	if file.WorkspaceID != workspaceID {
		return domain.ErrFileNotFound
	}
	return s.repo.DeleteFile(ctx, fileID)
}
