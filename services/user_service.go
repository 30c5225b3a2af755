package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
	"github.com/ecokan/vendo/repository"
)

// listLimit caps every listing endpoint.
const listLimit = 50

// bcryptCost matches the hashes already in the store.
const bcryptCost = 10

// UserService covers account management. Operations that take a callerID
// enforce the self-only rule: a user reads, rewrites and deletes only their
// own record, whatever id the path carries.
type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	List(ctx context.Context, callerID int64) ([]models.User, error)
	Get(ctx context.Context, callerID, id int64) (*models.User, error)
	UpdateRole(ctx context.Context, callerID, id int64, req *models.UpdateUserRequest) (*models.User, error)
	// Deposit adds a single accepted coin to the caller's balance.
	Deposit(ctx context.Context, callerID int64, req *models.DepositRequest) (*models.User, error)
	// Reset zeroes the caller's balance.
	Reset(ctx context.Context, callerID int64) (*models.User, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Deposit:      0,
		Role:         req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// List is scoped to the caller: the result holds at most the caller's own record.
func (s *userService) List(ctx context.Context, callerID int64) ([]models.User, error) {
	return s.userRepo.ListByID(ctx, callerID, listLimit)
}

func (s *userService) Get(ctx context.Context, callerID, id int64) (*models.User, error) {
	if callerID != id {
		return nil, fmt.Errorf("%w: You do not have access to this resource", pkg.ErrNoAccess)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: User not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, callerID, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	if callerID != id {
		return nil, fmt.Errorf("%w: You do not have access to this resource", pkg.ErrNoAccess)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.UpdateRole(ctx, id, req.Role)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: User not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Deposit(ctx context.Context, callerID int64, req *models.DepositRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.IncrementDeposit(ctx, callerID, req.Deposit)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: User not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Reset(ctx context.Context, callerID int64) (*models.User, error) {
	user, err := s.userRepo.ResetDeposit(ctx, callerID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: User not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, callerID, id int64) error {
	if callerID != id {
		return fmt.Errorf("%w: You do not have permission to this resource", pkg.ErrNoAccess)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: User not found", pkg.ErrNotFound)
		}
		return err
	}

	return nil
}
