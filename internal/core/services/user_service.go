package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	portsrepo "github.com/clockwork-hr/attendance_app/internal/core/ports/repositories"
	portssvc "github.com/clockwork-hr/attendance_app/internal/core/ports/services"
	"github.com/clockwork-hr/attendance_app/internal/dto"
	"github.com/clockwork-hr/attendance_app/internal/middleware"
	"github.com/clockwork-hr/attendance_app/internal/utils"
)

// userService manages employee accounts and credential checks.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	auditSvc portssvc.AuditSvc
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, auditSvc portssvc.AuditSvc) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, auditSvc: auditSvc}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a new user. Only admins may grant elevated roles.
func (s *userService) CreateUser(ctx context.Context, principal domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := req.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if role != domain.RoleEmployee && principal.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:         uuid.NewString(),
		Email:          req.Email,
		Name:           req.Name,
		Role:           role,
		Region:         req.Region,
		Locality:       req.Locality,
		HashedPassword: hashed,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.auditSvc.Record(ctx, &user.UserID, domain.ActionUserCreated,
		fmt.Sprintf("created user %s with role %s", user.Email, user.Role), nil)
	return &user, nil
}

// UpdateUser updates an existing user's mutable fields.
func (s *userService) UpdateUser(ctx context.Context, principal domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if !principal.ActsOnSelf(userID) && principal.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Region != nil {
		user.Region = req.Region
	}
	if req.Locality != nil {
		user.Locality = req.Locality
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = principal.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.auditSvc.Record(ctx, &userID, domain.ActionUserUpdated,
		fmt.Sprintf("updated user %s", userID), nil)
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByEmail retrieves a user by email.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

// ListUsers retrieves a paginated list of users. Approver territory.
func (s *userService) ListUsers(ctx context.Context, principal domain.Principal, params dto.PaginationParams) (*dto.ListUsersResponse, error) {
	if !principal.Role.CanApprove() {
		return nil, apperrors.ErrForbidden
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	users, nextToken, err := s.userRepo.ListUsers(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	resp := dto.ToListUsersResponse(users, nextToken)
	return &resp, nil
}

// AuthenticateUser authenticates a user with email and password. The same
// error comes back for a missing user and a bad password.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.HashedPassword) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
