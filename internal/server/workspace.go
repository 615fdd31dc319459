package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	workspacedomain "github.com/tedxmekong/stagehub/internal/workspace/domain"
)

type CreatePageRequest struct {
	ParentID  *string `json:"parent_id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	SortOrder int     `json:"sort_order"`
}

type UpdatePageRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	SortOrder *int    `json:"sort_order"`
}

type CreateTaskRequest struct {
	Title      string     `json:"title"`
	AssigneeID *string    `json:"assignee_id"`
	DueDate    *time.Time `json:"due_date"`
}

type AddFileRequest struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

func (s *Server) ListMyWorkspaces(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaces, err := s.workspaceSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}

func (s *Server) GetWorkspace(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workspace, err := s.workspaceSvc.Get(c.Request.Context(), user.ID, workspaceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, workspace)
}

func (s *Server) AssignWorkspaceMentor(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		MentorID string `json:"mentor_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	mentorID, err := snowflake.ParseString(strings.TrimSpace(req.MentorID))
	if err != nil {
		AbortWithError(c, newValidationError("mentor_id", "invalid_id", "invalid identifier"))
		return
	}

	if err := s.workspaceSvc.AssignMentor(c.Request.Context(), workspaceID, mentorID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// -------- Pages --------

func (s *Server) CreateWorkspacePage(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	parentID, ok := parseOptionalID(req.ParentID)
	if !ok {
		AbortWithError(c, newValidationError("parent_id", "invalid_id", "invalid identifier"))
		return
	}

	page, err := s.workspaceSvc.CreatePage(c.Request.Context(), user.ID, workspacedomain.PageRequest{
		WorkspaceID: workspaceID,
		ParentID:    parentID,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, page)
}

func (s *Server) ListWorkspacePages(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pages, err := s.workspaceSvc.ListPages(c.Request.Context(), user.ID, workspaceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (s *Server) UpdateWorkspacePage(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pageID, ok := parseIDParam(c, "pageId")
	if !ok {
		return
	}

	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	page, err := s.workspaceSvc.UpdatePage(c.Request.Context(), user.ID, workspacedomain.PageUpdate{
		WorkspaceID: workspaceID,
		PageID:      pageID,
		Title:       req.Title,
		Content:     req.Content,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) DeleteWorkspacePage(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pageID, ok := parseIDParam(c, "pageId")
	if !ok {
		return
	}

	if err := s.workspaceSvc.DeletePage(c.Request.Context(), user.ID, workspaceID, pageID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// -------- Tasks --------

func (s *Server) CreateWorkspaceTask(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	assigneeID, ok := parseOptionalID(req.AssigneeID)
	if !ok {
		AbortWithError(c, newValidationError("assignee_id", "invalid_id", "invalid identifier"))
		return
	}

	task, err := s.workspaceSvc.CreateTask(c.Request.Context(), user.ID, workspacedomain.TaskRequest{
		WorkspaceID: workspaceID,
		Title:       strings.TrimSpace(req.Title),
		AssigneeID:  assigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) ListWorkspaceTasks(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := s.workspaceSvc.ListTasks(c.Request.Context(), user.ID, workspaceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) MoveWorkspaceTask(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	task, err := s.workspaceSvc.MoveTask(c.Request.Context(), user.ID, workspaceID, taskID, strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) DeleteWorkspaceTask(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := s.workspaceSvc.DeleteTask(c.Request.Context(), user.ID, workspaceID, taskID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// -------- Files --------

func (s *Server) AddWorkspaceFile(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	file, err := s.workspaceSvc.AddFile(c.Request.Context(), user.ID, workspacedomain.FileRequest{
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(req.Name),
		Size:        req.Size,
		URL:         strings.TrimSpace(req.URL),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

func (s *Server) ListWorkspaceFiles(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	files, err := s.workspaceSvc.ListFiles(c.Request.Context(), user.ID, workspaceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (s *Server) RemoveWorkspaceFile(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	fileID, ok := parseIDParam(c, "fileId")
	if !ok {
		return
	}

	if err := s.workspaceSvc.RemoveFile(c.Request.Context(), user.ID, workspaceID, fileID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
