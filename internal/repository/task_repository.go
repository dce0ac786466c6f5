package repository

import (
	"strings"

	"github.com/taskhub/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task. A missing owner surfaces as a storage
// error; callers are expected to have verified the owner exists.
func (r *GormTaskRepository) Create(task *models.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a task by ID, joining the owner when asked for
func (r *GormTaskRepository) FindByID(id uint64, includeOwner bool) (*models.Task, error) {
	var task models.Task
	query := r.db
	if includeOwner {
		query = query.Preload("Owner")
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &task, nil
}

// ListByOwner retrieves tasks of one owner with filtering and pagination.
// Filters are conjunctive; the search term is bound as a parameter and
// matched case-insensitively against title and description. Results are
// ordered newest first with the ID as a deterministic tie-break.
func (r *GormTaskRepository) ListByOwner(ownerID uint64, filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("owner_id = ?", ownerID)

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Search != nil {
		pattern := "%" + strings.ToLower(*filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC, id DESC")
	if filter.Skip > 0 {
		listQuery = listQuery.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		listQuery = listQuery.Limit(filter.Limit)
	}

	var tasks []models.Task
	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update loads the task, merges the patch field by field, and saves.
func (r *GormTaskRepository) Update(id uint64, patch TaskPatch) (*models.Task, error) {
	task, err := r.FindByID(id, false)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := r.db.Save(task).Error; err != nil {
		return nil, translateError(err)
	}
	return task, nil
}

// Delete removes a task. Returns false when the task does not exist.
func (r *GormTaskRepository) Delete(id uint64) (bool, error) {
	res := r.db.Delete(&models.Task{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// taskStatsRow is the scan target for the stats aggregate.
type taskStatsRow struct {
	Total     int64
	Completed int64
}

// Stats computes total, completed, pending counts and the completion
// rate over all tasks of an owner. A single aggregate query keeps the
// counts consistent with each other under concurrent writes.
func (r *GormTaskRepository) Stats(ownerID uint64) (*TaskStats, error) {
	var row taskStatsRow
	err := r.db.Model(&models.Task{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed").
		Where("owner_id = ?", ownerID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &TaskStats{
		Total:     row.Total,
		Completed: row.Completed,
		Pending:   row.Total - row.Completed,
	}
	if row.Total > 0 {
		stats.CompletionRate = float64(row.Completed) / float64(row.Total)
	}
	return stats, nil
}
