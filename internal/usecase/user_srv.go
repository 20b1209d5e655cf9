package usecase

import (
	"context"
	"fmt"

	"parking-booking/internal/data/repository"
	"parking-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	ListCustomers(ctx context.Context) ([]response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), repository.ErrNotFound)
	}

	return &response.UserResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		FullName: user.FullName,
		Pincode:  user.Pincode,
		Address:  user.Address,
		IsAdmin:  user.IsAdmin,
	}, nil
}

func (s *userService) ListCustomers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserResponse{
			ID:       user.ID.String(),
			Email:    user.Email,
			FullName: user.FullName,
			Pincode:  user.Pincode,
			Address:  user.Address,
			IsAdmin:  user.IsAdmin,
		}
	}

	return userResponses, nil
}
