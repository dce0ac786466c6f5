package repository

import (
	"errors"
	"fmt"

	"github.com/taskhub/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Update loads the user, merges the patch field by field, and saves.
// Fields absent from the patch keep their persisted values.
func (r *GormUserRepository) Update(id uint64, patch UserPatch) (*models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := r.db.Save(user).Error; err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// Delete removes the user and every task they own in one transaction.
func (r *GormUserRepository) Delete(id uint64) (bool, error) {
	if _, err := r.FindByID(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete owned tasks: %w", err)
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// translateError maps GORM errors to the repository sentinels.
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	}
	return err
}
