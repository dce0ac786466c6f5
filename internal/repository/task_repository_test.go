package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/taskhub/task-tracker-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskRepositoryTestSuite defines the test suite for GormTaskRepository
type TaskRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	repo  TaskRepository
	owner *models.User
}

// SetupTest runs before each test
func (suite *TaskRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{})
	suite.Require().NoError(err)

	suite.repo = NewTaskRepository(suite.db)

	suite.owner = &models.User{Email: "a@x.com", Username: "alice", IsActive: true}
	suite.Require().NoError(suite.db.Create(suite.owner).Error)
}

// TearDownTest runs after each test
func (suite *TaskRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskRepositoryTestSuite) createTask(title string, ownerID uint64, mutate ...func(*models.Task)) *models.Task {
	task := &models.Task{
		Title:    title,
		Priority: models.TaskPriorityMedium,
		OwnerID:  ownerID,
	}
	for _, m := range mutate {
		m(task)
	}
	suite.Require().NoError(suite.repo.Create(task))
	return task
}

func boolPtr(b bool) *bool                                { return &b }
func strPtr(s string) *string                             { return &s }
func priorityPtr(p models.TaskPriority) *models.TaskPriority { return &p }

func (suite *TaskRepositoryTestSuite) TestListByOwner_OnlyOwnedTasks() {
	other := &models.User{Email: "b@x.com", Username: "bob", IsActive: true}
	suite.Require().NoError(suite.db.Create(other).Error)

	mine := suite.createTask("mine", suite.owner.ID)
	suite.createTask("theirs", other.ID)

	tasks, total, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Limit: 100})
	suite.NoError(err)
	suite.EqualValues(1, total)
	suite.Require().Len(tasks, 1)
	suite.Equal(mine.ID, tasks[0].ID)
}

func (suite *TaskRepositoryTestSuite) TestListByOwner_CompletedFilter() {
	suite.createTask("open", suite.owner.ID)
	done := suite.createTask("done", suite.owner.ID, func(t *models.Task) { t.Completed = true })

	tasks, total, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Completed: boolPtr(true), Limit: 100})
	suite.NoError(err)
	suite.EqualValues(1, total)
	suite.Require().Len(tasks, 1)
	suite.Equal(done.ID, tasks[0].ID)

	tasks, _, err = suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Completed: boolPtr(false), Limit: 100})
	suite.NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal("open", tasks[0].Title)
}

func (suite *TaskRepositoryTestSuite) TestListByOwner_PriorityFilter() {
	low := suite.createTask("low one", suite.owner.ID, func(t *models.Task) { t.Priority = models.TaskPriorityLow })
	suite.createTask("high one", suite.owner.ID, func(t *models.Task) { t.Priority = models.TaskPriorityHigh })

	tasks, _, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Priority: priorityPtr(models.TaskPriorityLow), Limit: 100})
	suite.NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal(low.ID, tasks[0].ID)
}

func (suite *TaskRepositoryTestSuite) TestListByOwner_SearchTitleOrDescription() {
	suite.createTask("Buy MILK", suite.owner.ID)
	suite.createTask("walk dog", suite.owner.ID, func(t *models.Task) { t.Description = "then buy milk too" })
	suite.createTask("unrelated", suite.owner.ID)

	tasks, total, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Search: strPtr("milk"), Limit: 100})
	suite.NoError(err)
	suite.EqualValues(2, total)
	suite.Len(tasks, 2)
}

func (suite *TaskRepositoryTestSuite) TestListByOwner_FiltersAreConjunctive() {
	suite.createTask("milk run", suite.owner.ID, func(t *models.Task) {
		t.Priority = models.TaskPriorityLow
		t.Completed = true
	})
	suite.createTask("milk run again", suite.owner.ID, func(t *models.Task) {
		t.Priority = models.TaskPriorityLow
	})
	suite.createTask("milk run high", suite.owner.ID, func(t *models.Task) {
		t.Priority = models.TaskPriorityHigh
		t.Completed = true
	})

	tasks, _, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{
		Completed: boolPtr(true),
		Priority:  priorityPtr(models.TaskPriorityLow),
		Search:    strPtr("milk"),
		Limit:     100,
	})
	suite.NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal("milk run", tasks[0].Title)
}

func (suite *TaskRepositoryTestSuite) TestListByOwner_CompletedSubsetOfAll() {
	for i := 0; i < 6; i++ {
		suite.createTask("t", suite.owner.ID, func(t *models.Task) { t.Completed = i%2 == 0 })
	}

	all, _, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Limit: 100})
	suite.NoError(err)

	completed, _, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Completed: boolPtr(true), Limit: 100})
	suite.NoError(err)

	allIDs := make(map[uint64]bool, len(all))
	for _, t := range all {
		allIDs[t.ID] = true
	}
	suite.Less(len(completed), len(all))
	for _, t := range completed {
		suite.True(t.Completed)
		suite.True(allIDs[t.ID])
	}
}

func (suite *TaskRepositoryTestSuite) TestListByOwner_OrderNewestFirst() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	oldest := suite.createTask("oldest", suite.owner.ID, func(t *models.Task) { t.CreatedAt = base })
	newest := suite.createTask("newest", suite.owner.ID, func(t *models.Task) { t.CreatedAt = base.Add(2 * time.Hour) })
	middle := suite.createTask("middle", suite.owner.ID, func(t *models.Task) { t.CreatedAt = base.Add(time.Hour) })

	tasks, _, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Limit: 100})
	suite.NoError(err)
	suite.Require().Len(tasks, 3)
	suite.Equal(newest.ID, tasks[0].ID)
	suite.Equal(middle.ID, tasks[1].ID)
	suite.Equal(oldest.ID, tasks[2].ID)
}

func (suite *TaskRepositoryTestSuite) TestListByOwner_EqualTimestampsTieBreakOnID() {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []uint64
	for i := 0; i < 3; i++ {
		task := suite.createTask("same instant", suite.owner.ID, func(t *models.Task) { t.CreatedAt = ts })
		ids = append(ids, task.ID)
	}

	tasks, _, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Limit: 100})
	suite.NoError(err)
	suite.Require().Len(tasks, 3)
	// Highest ID first for equal creation times
	suite.Equal(ids[2], tasks[0].ID)
	suite.Equal(ids[1], tasks[1].ID)
	suite.Equal(ids[0], tasks[2].ID)
}

func (suite *TaskRepositoryTestSuite) TestListByOwner_PaginationReconstructsFullResult() {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	const n = 25
	for i := 0; i < n; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		suite.createTask("t", suite.owner.ID, func(t *models.Task) { t.CreatedAt = created })
	}

	full, total, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Limit: n})
	suite.NoError(err)
	suite.EqualValues(n, total)
	suite.Require().Len(full, n)

	const step = 10
	var paged []models.Task
	for skip := 0; skip < n; skip += step {
		page, _, err := suite.repo.ListByOwner(suite.owner.ID, TaskFilter{Skip: skip, Limit: step})
		suite.NoError(err)
		paged = append(paged, page...)
	}

	suite.Require().Len(paged, n)
	for i := range full {
		suite.Equal(full[i].ID, paged[i].ID)
	}
}

func (suite *TaskRepositoryTestSuite) TestFindByID_IncludeOwner() {
	task := suite.createTask("with owner", suite.owner.ID)

	loaded, err := suite.repo.FindByID(task.ID, true)
	suite.NoError(err)
	suite.Equal(suite.owner.ID, loaded.Owner.ID)
	suite.Equal("alice", loaded.Owner.Username)

	bare, err := suite.repo.FindByID(task.ID, false)
	suite.NoError(err)
	suite.Zero(bare.Owner.ID)
}

func (suite *TaskRepositoryTestSuite) TestFindByID_NotFound() {
	_, err := suite.repo.FindByID(4242, false)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *TaskRepositoryTestSuite) TestUpdate_PartialLeavesOtherFieldsUntouched() {
	due := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	task := suite.createTask("buy milk", suite.owner.ID, func(t *models.Task) {
		t.Description = "2 liters"
		t.Priority = models.TaskPriorityLow
		t.DueDate = &due
	})

	updated, err := suite.repo.Update(task.ID, TaskPatch{Completed: boolPtr(true)})
	suite.NoError(err)

	suite.True(updated.Completed)
	suite.Equal("buy milk", updated.Title)
	suite.Equal("2 liters", updated.Description)
	suite.Equal(models.TaskPriorityLow, updated.Priority)
	suite.Require().NotNil(updated.DueDate)
	suite.True(due.Equal(*updated.DueDate))
	suite.Equal(task.OwnerID, updated.OwnerID)
}

func (suite *TaskRepositoryTestSuite) TestUpdate_ClearDueDate() {
	due := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	task := suite.createTask("buy milk", suite.owner.ID, func(t *models.Task) { t.DueDate = &due })

	updated, err := suite.repo.Update(task.ID, TaskPatch{ClearDueDate: true})
	suite.NoError(err)
	suite.Nil(updated.DueDate)
}

func (suite *TaskRepositoryTestSuite) TestUpdate_NotFound() {
	_, err := suite.repo.Update(999, TaskPatch{Title: strPtr("nope")})
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *TaskRepositoryTestSuite) TestDelete() {
	task := suite.createTask("short lived", suite.owner.ID)

	deleted, err := suite.repo.Delete(task.ID)
	suite.NoError(err)
	suite.True(deleted)

	deleted, err = suite.repo.Delete(task.ID)
	suite.NoError(err)
	suite.False(deleted)
}

func (suite *TaskRepositoryTestSuite) TestStats_EmptyOwner() {
	stats, err := suite.repo.Stats(suite.owner.ID)
	suite.NoError(err)
	suite.EqualValues(0, stats.Total)
	suite.EqualValues(0, stats.Completed)
	suite.EqualValues(0, stats.Pending)
	suite.Zero(stats.CompletionRate)
}

func (suite *TaskRepositoryTestSuite) TestStats_CountsAndRate() {
	for i := 0; i < 4; i++ {
		suite.createTask("t", suite.owner.ID, func(t *models.Task) { t.Completed = i == 0 })
	}

	stats, err := suite.repo.Stats(suite.owner.ID)
	suite.NoError(err)
	suite.EqualValues(4, stats.Total)
	suite.EqualValues(1, stats.Completed)
	suite.EqualValues(3, stats.Pending)
	suite.Equal(stats.Total, stats.Completed+stats.Pending)
	suite.InDelta(0.25, stats.CompletionRate, 1e-9)
}

func (suite *TaskRepositoryTestSuite) TestStats_ScenarioCompleteSingleTask() {
	task := suite.createTask("buy milk", suite.owner.ID, func(t *models.Task) { t.Priority = models.TaskPriorityLow })

	stats, err := suite.repo.Stats(suite.owner.ID)
	suite.NoError(err)
	suite.EqualValues(1, stats.Total)
	suite.EqualValues(0, stats.Completed)
	suite.EqualValues(1, stats.Pending)
	suite.Zero(stats.CompletionRate)

	_, err = suite.repo.Update(task.ID, TaskPatch{Completed: boolPtr(true)})
	suite.Require().NoError(err)

	stats, err = suite.repo.Stats(suite.owner.ID)
	suite.NoError(err)
	suite.EqualValues(1, stats.Total)
	suite.EqualValues(1, stats.Completed)
	suite.EqualValues(0, stats.Pending)
	suite.InDelta(1.0, stats.CompletionRate, 1e-9)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
