package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	store  domain.Store
	now    func() time.Time
	logger *zerolog.Logger
}

func NewRequestService(store domain.Store, now func() time.Time, logger *zerolog.Logger) *RequestService {
	if now == nil {
		now = time.Now
	}
	return &RequestService{
		store:  store,
		now:    now,
		logger: logger,
	}
}

func (s *RequestService) Create(ctx context.Context, request *models.ItemRequest) error {
	exists, err := s.store.UserExists(ctx, request.RequestorID)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrUserNotFound
	}

	request.Created = s.now()
	if err := s.store.CreateRequest(ctx, request); err != nil {
		return err
	}

	s.logger.Info().
		Int64("request_id", request.ID).
		Int64("requestor_id", request.RequestorID).
		Msg("item request created")
	return nil
}

func (s *RequestService) GetAllForUser(ctx context.Context, userID int64) ([]models.ItemRequestView, error) {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrUserNotFound
	}

	requests, err := s.store.GetRequestsByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, requests)
}

func (s *RequestService) GetAll(ctx context.Context, userID int64, page models.Page) ([]models.ItemRequestView, error) {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrUserNotFound
	}

	requests, err := s.store.GetRequestsExcluding(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (*models.ItemRequestView, error) {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrUserNotFound
	}

	request, err := s.store.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, []models.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RequestService) buildViews(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequestView, error) {
	views := make([]models.ItemRequestView, 0, len(requests))
	for _, request := range requests {
		items, err := s.store.GetItemsByRequestID(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.ItemRequestView{ItemRequest: request, Items: items})
	}
	return views, nil
}
