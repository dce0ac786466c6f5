package repository

import (
	"time"

	"github.com/taskhub/task-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update applies a partial update and returns the updated user
	Update(id uint64, patch UserPatch) (*models.User, error)

	// Delete removes a user and all tasks they own.
	// Returns false when the user does not exist.
	Delete(id uint64) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID, optionally joining the owner
	FindByID(id uint64, includeOwner bool) (*models.Task, error)

	// ListByOwner retrieves a filtered, ordered page of an owner's tasks
	// together with the total count under the same filter
	ListByOwner(ownerID uint64, filter TaskFilter) ([]models.Task, int64, error)

	// Update applies a partial update and returns the updated task
	Update(id uint64, patch TaskPatch) (*models.Task, error)

	// Delete removes a task. Returns false when the task does not exist.
	Delete(id uint64) (bool, error)

	// Stats computes aggregate statistics over all tasks of an owner
	Stats(ownerID uint64) (*TaskStats, error)
}

// TaskFilter holds filtering and pagination options for listing tasks.
// Nil fields are not applied; set fields combine conjunctively.
type TaskFilter struct {
	Completed *bool
	Priority  *models.TaskPriority
	// Search matches a case-insensitive substring in title or description.
	Search *string
	Skip   int
	Limit  int
}

// TaskStats holds aggregate task counts for one owner.
// Pending is always Total - Completed; CompletionRate is 0 for an
// owner with no tasks.
type TaskStats struct {
	Total          int64   `json:"total_tasks"`
	Completed      int64   `json:"completed_tasks"`
	Pending        int64   `json:"pending_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// UserPatch carries the fields of a partial user update.
// Nil fields are left untouched.
type UserPatch struct {
	Email    *string
	Username *string
	FullName *string
	IsActive *bool
}

// TaskPatch carries the fields of a partial task update.
// Nil fields are left untouched; ClearDueDate removes the due date
// and wins over DueDate when both are set.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *models.TaskPriority
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
}
