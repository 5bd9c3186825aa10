package service

import (
	"context"
	"io"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockStore) UpdateUser(ctx context.Context, id int64, p models.UserPatch) (*models.User, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockStore) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *mockStore) UserExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockStore) CreateItem(ctx context.Context, i *models.Item) error {
	return m.Called(ctx, i).Error(0)
}
func (m *mockStore) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}
func (m *mockStore) UpdateItem(ctx context.Context, id int64, p models.ItemPatch) (*models.Item, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}
func (m *mockStore) DeleteItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) SearchItems(ctx context.Context, text string, page models.Page) ([]models.Item, error) {
	args := m.Called(ctx, text, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}
func (m *mockStore) GetItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.Item, error) {
	args := m.Called(ctx, ownerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}
func (m *mockStore) GetItemsByRequestID(ctx context.Context, requestID int64) ([]models.Item, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}
func (m *mockStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockStore) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockStore) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockStore) GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState, now time.Time, page models.Page) ([]models.Booking, error) {
	args := m.Called(ctx, bookerID, state, now, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockStore) GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState, now time.Time, page models.Page) ([]models.Booking, error) {
	args := m.Called(ctx, ownerID, state, now, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockStore) GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRef), args.Error(1)
}
func (m *mockStore) GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRef), args.Error(1)
}
func (m *mockStore) HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, bookerID, now)
	return args.Bool(0), args.Error(1)
}
func (m *mockStore) CreateComment(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockStore) GetCommentsByItemID(ctx context.Context, itemID int64) ([]models.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}
func (m *mockStore) CreateRequest(ctx context.Context, r *models.ItemRequest) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}
func (m *mockStore) GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error) {
	args := m.Called(ctx, requestorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}
func (m *mockStore) GetRequestsExcluding(ctx context.Context, requestorID int64, page models.Page) ([]models.ItemRequest, error) {
	args := m.Called(ctx, requestorID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}

var testClock = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testClock }

func TestBookingServiceAdd(t *testing.T) {
	logger := zerolog.New(io.Discard)
	ctx := context.Background()

	t.Run("end must be after start", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		booking := &models.Booking{ItemID: 1, BookerID: 2, Start: testClock.Add(2 * time.Hour), End: testClock.Add(time.Hour)}
		err := svc.Add(ctx, booking)
		assert.ErrorIs(t, err, models.ErrInvalidPeriod)

		booking.End = booking.Start
		err = svc.Add(ctx, booking)
		assert.ErrorIs(t, err, models.ErrInvalidPeriod)
		store.AssertExpectations(t)
	})

	t.Run("unavailable item", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("GetItemByID", ctx, int64(1)).Return(&models.Item{ID: 1, OwnerID: 5, Available: false}, nil).Once()

		booking := &models.Booking{ItemID: 1, BookerID: 2, Start: testClock.Add(time.Hour), End: testClock.Add(2 * time.Hour)}
		err := svc.Add(ctx, booking)
		assert.ErrorIs(t, err, models.ErrNotAvailable)
		store.AssertExpectations(t)
	})

	t.Run("unknown booker", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("GetItemByID", ctx, int64(1)).Return(&models.Item{ID: 1, OwnerID: 5, Available: true}, nil).Once()
		store.On("UserExists", ctx, int64(2)).Return(false, nil).Once()

		booking := &models.Booking{ItemID: 1, BookerID: 2, Start: testClock.Add(time.Hour), End: testClock.Add(2 * time.Hour)}
		err := svc.Add(ctx, booking)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
		store.AssertExpectations(t)
	})

	t.Run("owner cannot book own item", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("GetItemByID", ctx, int64(1)).Return(&models.Item{ID: 1, OwnerID: 2, Available: true}, nil).Once()
		store.On("UserExists", ctx, int64(2)).Return(true, nil).Once()

		booking := &models.Booking{ItemID: 1, BookerID: 2, Start: testClock.Add(time.Hour), End: testClock.Add(2 * time.Hour)}
		err := svc.Add(ctx, booking)
		assert.ErrorIs(t, err, models.ErrItemNotFound)
		store.AssertExpectations(t)
	})

	t.Run("success forces waiting and hydrates", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		item := &models.Item{ID: 1, OwnerID: 5, Available: true}
		store.On("GetItemByID", ctx, int64(1)).Return(item, nil).Once()
		store.On("UserExists", ctx, int64(2)).Return(true, nil).Once()
		store.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				b := args.Get(1).(*models.Booking)
				assert.Equal(t, models.StatusWaiting, b.Status)
				b.ID = 42
			}).
			Return(nil).Once()
		store.On("GetBookingByID", ctx, int64(42)).Return(&models.Booking{
			ID: 42, ItemID: 1, BookerID: 2, Status: models.StatusWaiting,
			Item:   item,
			Booker: &models.User{ID: 2, Name: "booker"},
		}, nil).Once()

		booking := &models.Booking{ItemID: 1, BookerID: 2, Start: testClock.Add(time.Hour), End: testClock.Add(2 * time.Hour)}
		err := svc.Add(ctx, booking)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), booking.ID)
		assert.NotNil(t, booking.Item)
		assert.NotNil(t, booking.Booker)
		store.AssertExpectations(t)
	})
}

func TestBookingServiceApprove(t *testing.T) {
	logger := zerolog.New(io.Discard)
	ctx := context.Background()

	waiting := func() *models.Booking {
		return &models.Booking{
			ID: 7, ItemID: 1, BookerID: 2, Status: models.StatusWaiting,
			Item: &models.Item{ID: 1, OwnerID: 5},
		}
	}

	t.Run("approve", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("GetBookingByID", ctx, int64(7)).Return(waiting(), nil).Once()
		store.On("UpdateBookingStatus", ctx, int64(7), models.StatusApproved).Return(nil).Once()

		booking, err := svc.Approve(ctx, 7, 5, true)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusApproved, booking.Status)
		store.AssertExpectations(t)
	})

	t.Run("reject", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("GetBookingByID", ctx, int64(7)).Return(waiting(), nil).Once()
		store.On("UpdateBookingStatus", ctx, int64(7), models.StatusRejected).Return(nil).Once()

		booking, err := svc.Approve(ctx, 7, 5, false)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusRejected, booking.Status)
		store.AssertExpectations(t)
	})

	t.Run("only the owner decides", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("GetBookingByID", ctx, int64(7)).Return(waiting(), nil).Once()

		_, err := svc.Approve(ctx, 7, 2, true)
		assert.ErrorIs(t, err, models.ErrNotOwner)
		store.AssertExpectations(t)
	})

	t.Run("already decided", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		decided := waiting()
		decided.Status = models.StatusApproved
		store.On("GetBookingByID", ctx, int64(7)).Return(decided, nil).Once()

		_, err := svc.Approve(ctx, 7, 5, false)
		assert.ErrorIs(t, err, models.ErrAlreadyDecided)
		store.AssertExpectations(t)
	})

	t.Run("missing booking", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("GetBookingByID", ctx, int64(99)).Return(nil, models.ErrBookingNotFound).Once()

		_, err := svc.Approve(ctx, 99, 5, true)
		assert.ErrorIs(t, err, models.ErrBookingNotFound)
		store.AssertExpectations(t)
	})
}

func TestBookingServiceGet(t *testing.T) {
	logger := zerolog.New(io.Discard)
	ctx := context.Background()

	booking := &models.Booking{
		ID: 7, ItemID: 1, BookerID: 2, Status: models.StatusWaiting,
		Item: &models.Item{ID: 1, OwnerID: 5},
	}

	t.Run("booker sees it", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)
		store.On("GetBookingByID", ctx, int64(7)).Return(booking, nil).Once()

		got, err := svc.Get(ctx, 7, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
	})

	t.Run("owner sees it", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)
		store.On("GetBookingByID", ctx, int64(7)).Return(booking, nil).Once()

		got, err := svc.Get(ctx, 7, 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
	})

	t.Run("stranger does not", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)
		store.On("GetBookingByID", ctx, int64(7)).Return(booking, nil).Once()

		_, err := svc.Get(ctx, 7, 99)
		assert.ErrorIs(t, err, models.ErrNotOwner)
	})
}

func TestBookingServiceLists(t *testing.T) {
	logger := zerolog.New(io.Discard)
	ctx := context.Background()

	t.Run("by booker", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("UserExists", ctx, int64(2)).Return(true, nil).Once()
		store.On("GetBookingsByBooker", ctx, int64(2), models.StateFuture, testClock, models.Page{}).
			Return([]models.Booking{{ID: 1}, {ID: 2}}, nil).Once()

		got, err := svc.ListByBooker(ctx, 2, models.StateFuture, models.Page{})
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		store.AssertExpectations(t)
	})

	t.Run("by owner", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("UserExists", ctx, int64(5)).Return(true, nil).Once()
		store.On("GetBookingsByOwner", ctx, int64(5), models.StateAll, testClock, models.Page{}).
			Return([]models.Booking{{ID: 1}}, nil).Once()

		got, err := svc.ListByOwner(ctx, 5, models.StateAll, models.Page{})
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		store.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := new(mockStore)
		svc := NewBookingService(store, fixedNow, &logger)

		store.On("UserExists", ctx, int64(9)).Return(false, nil).Once()

		_, err := svc.ListByBooker(ctx, 9, models.StateAll, models.Page{})
		assert.ErrorIs(t, err, models.ErrUserNotFound)
		store.AssertExpectations(t)
	})
}
