package services

import (
	"errors"
	"fmt"

	"github.com/taskhub/task-tracker-api/internal/models"
	"github.com/taskhub/task-tracker-api/internal/repository"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username already exists")
)

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Email    string
	Username string
	FullName string
}

// CreateUser creates a new user after checking email and username
// uniqueness. The pre-checks race with concurrent inserts; the unique
// indexes are the backstop and also map to the taken errors.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if err := s.checkEmailFree(input.Email, 0); err != nil {
		return nil, err
	}
	if err := s.checkUsernameFree(input.Username, 0); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		Username: input.Username,
		FullName: input.FullName,
		IsActive: true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update to a user
func (s *UserService) UpdateUser(id uint64, patch repository.UserPatch) (*models.User, error) {
	if patch.Email != nil {
		if err := s.checkEmailFree(*patch.Email, id); err != nil {
			return nil, err
		}
	}
	if patch.Username != nil {
		if err := s.checkUsernameFree(*patch.Username, id); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.Update(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user and their tasks. Returns false when the
// user does not exist.
func (s *UserService) DeleteUser(id uint64) (bool, error) {
	deleted, err := s.userRepo.Delete(id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return deleted, nil
}

// checkEmailFree returns ErrEmailTaken when the email belongs to a
// user other than excludeID. Pass 0 to exclude nobody.
func (s *UserService) checkEmailFree(email string, excludeID uint64) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		if existing.ID != excludeID {
			return ErrEmailTaken
		}
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

func (s *UserService) checkUsernameFree(username string, excludeID uint64) error {
	existing, err := s.userRepo.FindByUsername(username)
	if err == nil {
		if existing.ID != excludeID {
			return ErrUsernameTaken
		}
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}
