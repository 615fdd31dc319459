package domain

import "errors"

var (
	ErrWorkspaceNotFound = errors.New("workspace_not_found")
	ErrPageNotFound      = errors.New("page_not_found")
	ErrTaskNotFound      = errors.New("task_not_found")
	ErrFileNotFound      = errors.New("file_not_found")
	ErrAccessDenied      = errors.New("workspace_access_denied")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidStatus     = errors.New("invalid_task_status")
	ErrInvalidTransition = errors.New("invalid_task_transition")
	ErrInvalidParent     = errors.New("invalid_parent_page")
)
