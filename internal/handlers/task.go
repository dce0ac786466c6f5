package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/task-tracker-api/internal/dto"
	apierrors "github.com/taskhub/task-tracker-api/internal/errors"
	"github.com/taskhub/task-tracker-api/internal/models"
	"github.com/taskhub/task-tracker-api/internal/repository"
	"github.com/taskhub/task-tracker-api/internal/services"
	"github.com/taskhub/task-tracker-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask creates a new task under a user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required,min=1,max=255"`
		Description string              `json:"description"`
		Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
		DueDate     *time.Time          `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(ownerID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOwnerNotFound):
			apierrors.NotFound(c, "User not found")
		case errors.Is(err, services.ErrInvalidPriority):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns a filtered page of a user's tasks.
// Supported query parameters: skip, limit, completed, priority, search.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPageParams(c)
	filter := repository.TaskFilter{
		Skip:  params.Skip,
		Limit: params.Limit,
	}

	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid completed filter")
			return
		}
		filter.Completed = &completed
	}
	if v := c.Query("priority"); v != "" {
		priority := models.TaskPriority(v)
		filter.Priority = &priority
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}

	tasks, total, err := h.taskService.ListTasks(ownerID, filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPriority) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Skip, params.Limit, total))
}

// GetTask returns a task with its owner
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title        *string              `json:"title" binding:"omitempty,min=1,max=255"`
		Description  *string              `json:"description"`
		Priority     *models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
		Completed    *bool                `json:"completed"`
		DueDate      *time.Time           `json:"due_date"`
		ClearDueDate bool                 `json:"clear_due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, repository.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Completed:    req.Completed,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrInvalidPriority):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.taskService.DeleteTask(id)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	if !deleted {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// TaskStats returns aggregate statistics for a user's tasks
func (h *TaskHandler) TaskStats(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.taskService.TaskStats(ownerID)
	if err != nil {
		if errors.Is(err, services.ErrOwnerNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatsResponse(*stats))
}
