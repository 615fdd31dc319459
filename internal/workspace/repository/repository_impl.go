package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/workspace/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, tx *gorm.DB, workspace *domain.Workspace) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(workspace).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Workspace, error) {
	var workspace domain.Workspace
	err := r.db.WithContext(ctx).First(&workspace, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &workspace, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID snowflake.ID) ([]domain.Workspace, error) {
	var workspaces []domain.Workspace
	err := r.db.WithContext(ctx).
		Where("owner_id = ? OR mentor_id = ?", ownerID, ownerID).
		Order("created_at DESC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Workspace{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) CreatePage(ctx context.Context, page *domain.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *repository) FindPage(ctx context.Context, id snowflake.ID) (*domain.Page, error) {
	var page domain.Page
	err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

func (r *repository) ListPages(ctx context.Context, workspaceID snowflake.ID) ([]domain.Page, error) {
	var pages []domain.Page
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("sort_order ASC, created_at ASC").
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *repository) UpdatePageFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Page{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) DeletePage(ctx context.Context, id snowflake.ID) error {
	// Children move up one level rather than being orphaned.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var page domain.Page
		if err := tx.First(&page, "id = ?", id).Error; err != nil {
			return err
		}
		err := tx.Model(&domain.Page{}).
			Where("parent_id = ?", id).
			Update("parent_id", page.ParentID).Error
		if err != nil {
			return err
		}
		return tx.Delete(&domain.Page{}, "id = ?", id).Error
	})
}

func (r *repository) CreateTask(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *repository) FindTask(ctx context.Context, id snowflake.ID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *repository) ListTasks(ctx context.Context, workspaceID snowflake.ID) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repository) UpdateTaskFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) DeleteTask(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}

func (r *repository) CreateFile(ctx context.Context, file *domain.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *repository) FindFile(ctx context.Context, id snowflake.ID) (*domain.File, error) {
	var file domain.File
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *repository) ListFiles(ctx context.Context, workspaceID snowflake.ID) ([]domain.File, error) {
	var files []domain.File
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *repository) DeleteFile(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Delete(&domain.File{}, "id = ?", id).Error
}
