package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/a7delivery/backend/internal/domain/shared"
)

// DefaultAccountLifetime is the expiry applied to new accounts when the
// admin does not pick a date
const DefaultAccountLifetime = 365 * 24 * time.Hour

// UserService handles dashboard account administration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user administration service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser creates a new dashboard account
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username already exists")
	}

	user, err := identity.NewUser(input.Username, input.Password, identity.RoleUser)
	if err != nil {
		return nil, err
	}

	expiresAt := input.ExpiresAt
	if expiresAt == nil {
		t := time.Now().Add(DefaultAccountLifetime)
		expiresAt = &t
	}
	user.SetExpiry(expiresAt)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("USERNAME_TAKEN", "Username already exists")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	info := userInfo(user, time.Now())
	return &info, nil
}

// ListUsers returns all non-admin accounts, newest first
func (s *UserService) ListUsers(ctx context.Context) ([]UserInfo, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	now := time.Now()
	infos := make([]UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, userInfo(u, now))
	}
	return infos, nil
}

// UpdateUser applies a partial update to an account
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.findManagedUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Password != "" {
		if err := user.SetPassword(input.Password); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		user.SetActive(*input.IsActive)
	}
	if input.ClearExpiry {
		user.SetExpiry(nil)
	} else if input.ExpiresAt != nil {
		user.SetExpiry(input.ExpiresAt)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User updated", zap.String("user_id", user.ID.String()))

	info := userInfo(user, time.Now())
	return &info, nil
}

// ToggleUser flips the active flag of an account
func (s *UserService) ToggleUser(ctx context.Context, userID string) (*ToggleUserResult, error) {
	user, err := s.findManagedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := user.ToggleActive()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to toggle user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User toggled",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_active", active))

	return &ToggleUserResult{UserID: user.ID, IsActive: active}, nil
}

// DeleteUser removes an account
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.findManagedUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}

	s.logger.Info("User deleted", zap.String("user_id", userID))
	return nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	admin, err := identity.NewUser(username, password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	s.logger.Info("Admin account created", zap.String("username", admin.Username))
	return nil
}

// findManagedUser loads a non-admin account by ID. Admin accounts cannot
// be managed through the user administration endpoints.
func (s *UserService) findManagedUser(ctx context.Context, userID string) (*identity.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to load user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user")
	}
	if user.IsAdmin() {
		return nil, shared.NewDomainError("FORBIDDEN", "Admin accounts cannot be managed here")
	}
	return user, nil
}

// parseUserID parses a path parameter into a user ID
func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid user ID")
	}
	return id, nil
}
