package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/task-tracker-api/internal/models"
	"github.com/taskhub/task-tracker-api/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrOwnerNotFound   = errors.New("owner not found")
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// CreateTask creates a new task under the given owner. Owner existence
// is verified here so a bad owner ID is a clean error instead of a
// foreign-key failure from the storage layer.
func (s *TaskService) CreateTask(ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	if _, err := s.userRepo.FindByID(ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to verify owner: %w", err)
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		OwnerID:     ownerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// GetTask returns a task with its owner joined
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns a filtered page of an owner's tasks and the total
// count under the same filter
func (s *TaskService) ListTasks(ownerID uint64, filter repository.TaskFilter) ([]models.Task, int64, error) {
	if filter.Priority != nil && !models.ValidPriority(*filter.Priority) {
		return nil, 0, ErrInvalidPriority
	}

	tasks, total, err := s.taskRepo.ListByOwner(ownerID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask applies a partial update to a task
func (s *TaskService) UpdateTask(id uint64, patch repository.TaskPatch) (*models.Task, error) {
	if patch.Priority != nil && !models.ValidPriority(*patch.Priority) {
		return nil, ErrInvalidPriority
	}

	task, err := s.taskRepo.Update(id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task. Returns false when the task does not exist.
func (s *TaskService) DeleteTask(id uint64) (bool, error) {
	deleted, err := s.taskRepo.Delete(id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return deleted, nil
}

// TaskStats returns aggregate statistics for an owner's tasks
func (s *TaskService) TaskStats(ownerID uint64) (*repository.TaskStats, error) {
	if _, err := s.userRepo.FindByID(ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to verify owner: %w", err)
	}

	stats, err := s.taskRepo.Stats(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}
