package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewUserService(store domain.Store, logger *zerolog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

func (s *UserService) Add(ctx context.Context, user *models.User) error {
	if err := s.store.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	if patch.Empty() {
		return s.store.GetUserByID(ctx, id)
	}
	return s.store.UpdateUser(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.store.GetAllUsers(ctx)
}
