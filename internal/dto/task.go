package dto

import (
	"time"

	"github.com/taskhub/task-tracker-api/internal/models"
	"github.com/taskhub/task-tracker-api/internal/repository"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	Completed   bool                `json:"completed"`
	DueDate     *time.Time          `json:"due_date"`
	OwnerID     uint64              `json:"owner_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Owner       *UserDTO            `json:"owner,omitempty"`
}

// TaskListResponse represents a page of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Skip       int       `json:"skip"`
	Limit      int       `json:"limit"`
	TotalCount int64     `json:"total_count"`
}

// TaskStatsResponse represents aggregate task statistics for one owner
type TaskStatsResponse struct {
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	PendingTasks   int64   `json:"pending_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include owner if preloaded
	if task.Owner.ID != 0 {
		owner := ToUserDTO(task.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, skip, limit int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Skip:       skip,
		Limit:      limit,
		TotalCount: totalCount,
	}
}

// ToTaskStatsResponse converts repository stats to the API shape
func ToTaskStatsResponse(stats repository.TaskStats) TaskStatsResponse {
	return TaskStatsResponse{
		TotalTasks:     stats.Total,
		CompletedTasks: stats.Completed,
		PendingTasks:   stats.Pending,
		CompletionRate: stats.CompletionRate,
	}
}
