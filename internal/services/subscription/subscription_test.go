package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// MockStore реализует интерфейс Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	if fill, ok := args.Get(0).(models.Subscription); ok {
		*result.(*models.Subscription) = fill
		return true, args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockPublisher реализует интерфейс Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) SubscriptionChanged(ctx context.Context, sub models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name          string
		req           models.DummySubscription
		wantErr       error
		wantNewspaper *string
		wantPlanName  string
		wantPlanPrice string
		wantWrite     bool
	}{
		{
			name:          "daily plan with newspaper",
			req:           models.DummySubscription{Plan: "daily", Newspaper: "New Vision"},
			wantNewspaper: strPtr("New Vision"),
			wantPlanName:  "Daily",
			wantPlanPrice: "$1.2 (UGX 3,500)",
			wantWrite:     true,
		},
		{
			name:    "daily plan without newspaper",
			req:     models.DummySubscription{Plan: "daily"},
			wantErr: ErrNewspaperRequired,
		},
		{
			name:          "monthly plan stores null newspaper",
			req:           models.DummySubscription{Plan: "monthly"},
			wantNewspaper: nil,
			wantPlanName:  "Monthly",
			wantPlanPrice: "$34 (UGX 125,000)",
			wantWrite:     true,
		},
		{
			name:          "premium plan ignores newspaper",
			req:           models.DummySubscription{Plan: "premium", Newspaper: "Bukedde"},
			wantNewspaper: nil,
			wantPlanName:  "Premium",
			wantPlanPrice: "$142 (UGX 505,000)",
			wantWrite:     true,
		},
		{
			name:    "unknown plan",
			req:     models.DummySubscription{Plan: "weekly"},
			wantErr: ErrUnknownPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			var written models.Subscription
			if tt.wantWrite {
				store.On("Set", mock.Anything, "subscription:uid-1", mock.Anything).
					Run(func(args mock.Arguments) {
						written = args.Get(2).(models.Subscription)
					}).
					Return(nil)
			}

			svc := New(store, nil, newNoopLogger())

			got, err := svc.Subscribe(context.Background(), "uid-1", tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "uid-1", written.UserID)
			assert.Equal(t, tt.req.Plan, written.Plan)
			assert.Equal(t, tt.wantPlanName, written.PlanName)
			assert.Equal(t, tt.wantPlanPrice, written.PlanPrice)
			if tt.wantNewspaper == nil {
				assert.Nil(t, written.Newspaper)
			} else {
				require.NotNil(t, written.Newspaper)
				assert.Equal(t, *tt.wantNewspaper, *written.Newspaper)
			}
			assert.True(t, written.Active)
			assert.WithinDuration(t, time.Now().UTC(), written.StartDate, time.Second)
			assert.Equal(t, written, *got)
		})
	}
}

func strPtr(s string) *string { return &s }

func TestSubscribe_PublishesEvent(t *testing.T) {
	store := new(MockStore)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	publisher := new(MockPublisher)
	publisher.On("SubscriptionChanged", mock.Anything, mock.AnythingOfType("models.Subscription")).Return(nil)

	svc := New(store, publisher, newNoopLogger())

	_, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscription{Plan: "monthly"})
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestSubscribe_PublishFailureDoesNotFailRequest(t *testing.T) {
	store := new(MockStore)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	publisher := new(MockPublisher)
	publisher.On("SubscriptionChanged", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := New(store, publisher, newNoopLogger())

	got, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscription{Plan: "premium"})
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestGet(t *testing.T) {
	store := new(MockStore)
	stored := models.Subscription{UserID: "uid-1", Plan: "monthly", Active: true}
	store.On("Get", mock.Anything, "subscription:uid-1", mock.Anything).Return(stored, nil)

	svc := New(store, nil, newNoopLogger())

	got, err := svc.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "monthly", got.Plan)
}

func TestGet_NotFound(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, "subscription:uid-404", mock.Anything).Return(false, nil)

	svc := New(store, nil, newNoopLogger())

	got, err := svc.Get(context.Background(), "uid-404")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}
