package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	store  domain.Store
	now    func() time.Time
	logger *zerolog.Logger
}

func NewItemService(store domain.Store, now func() time.Time, logger *zerolog.Logger) *ItemService {
	if now == nil {
		now = time.Now
	}
	return &ItemService{
		store:  store,
		now:    now,
		logger: logger,
	}
}

func (s *ItemService) Add(ctx context.Context, ownerID int64, item *models.Item) error {
	exists, err := s.store.UserExists(ctx, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrUserNotFound
	}

	if item.RequestID != nil {
		if _, err := s.store.GetRequestByID(ctx, *item.RequestID); err != nil {
			return err
		}
	}

	item.OwnerID = ownerID
	if err := s.store.CreateItem(ctx, item); err != nil {
		return err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return nil
}

func (s *ItemService) Get(ctx context.Context, itemID, callerID int64) (*models.ItemView, error) {
	item, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, item, callerID)
}

func (s *ItemService) Update(ctx context.Context, callerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, models.ErrNotOwner
	}
	if patch.Empty() {
		return item, nil
	}
	return s.store.UpdateItem(ctx, itemID, patch)
}

func (s *ItemService) Delete(ctx context.Context, callerID, itemID int64) error {
	item, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != callerID {
		return models.ErrNotOwner
	}

	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.logger.Info().Int64("item_id", itemID).Msg("item deleted")
	return nil
}

func (s *ItemService) Search(ctx context.Context, text string, page models.Page) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	return s.store.SearchItems(ctx, text, page)
}

func (s *ItemService) GetByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.ItemView, error) {
	items, err := s.store.GetItemsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	views := make([]models.ItemView, 0, len(items))
	for i := range items {
		view, err := s.buildView(ctx, &items[i], ownerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *ItemService) AddComment(ctx context.Context, comment *models.Comment) error {
	author, err := s.store.GetUserByID(ctx, comment.AuthorID)
	if err != nil {
		return err
	}
	if _, err := s.store.GetItemByID(ctx, comment.ItemID); err != nil {
		return err
	}

	completed, err := s.store.HasCompletedBooking(ctx, comment.ItemID, comment.AuthorID, s.now())
	if err != nil {
		return err
	}
	if !completed {
		return models.ErrWithoutBooking
	}

	comment.Created = s.now()
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return err
	}
	comment.AuthorName = author.Name

	s.logger.Info().
		Int64("comment_id", comment.ID).
		Int64("item_id", comment.ItemID).
		Int64("author_id", comment.AuthorID).
		Msg("comment created")
	return nil
}

// buildView attaches comments to the item, and the booking edges
// when the caller is the owner.
func (s *ItemService) buildView(ctx context.Context, item *models.Item, callerID int64) (*models.ItemView, error) {
	view := &models.ItemView{Item: *item}

	comments, err := s.store.GetCommentsByItemID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	view.Comments = comments

	if item.OwnerID == callerID {
		now := s.now()
		if view.LastBooking, err = s.store.GetLastBooking(ctx, item.ID, now); err != nil {
			return nil, err
		}
		if view.NextBooking, err = s.store.GetNextBooking(ctx, item.ID, now); err != nil {
			return nil, err
		}
	}
	return view, nil
}
