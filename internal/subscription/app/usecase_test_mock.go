package app

import (
	"context"

	"video_sharing_service/internal/subscription/domain"
	userdomain "video_sharing_service/internal/user/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockSubscriptionRepository Mock SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

// EnsureIndexes mock ensure indexes
func (m *MockSubscriptionRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// DeleteByPair mock delete subscription pair
func (m *MockSubscriptionRepository) DeleteByPair(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, subscriber, channel)
	return args.Bool(0), args.Error(1)
}

// UpsertPair mock upsert subscription pair
func (m *MockSubscriptionRepository) UpsertPair(ctx context.Context, subscriber, channel primitive.ObjectID) error {
	args := m.Called(ctx, subscriber, channel)
	return args.Error(0)
}

// ListSubscribers mock list subscribers
func (m *MockSubscriptionRepository) ListSubscribers(ctx context.Context, channel primitive.ObjectID) ([]domain.SubscriberEntry, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.SubscriberEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListSubscribedChannels mock list subscribed channels
func (m *MockSubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]domain.ChannelEntry, error) {
	args := m.Called(ctx, subscriber)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChannelEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository Mock user repository for subscription tests
type MockUserRepository struct {
	mock.Mock
}

// Create mock create user
func (m *MockUserRepository) Create(ctx context.Context, user *userdomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// FindOne mock find one user
func (m *MockUserRepository) FindOne(ctx context.Context, q *userdomain.UserQuery) (*userdomain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).(*userdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUsernameOrEmail mock find user by username or email
func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*userdomain.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) != nil {
		return args.Get(0).(*userdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateAccount mock update account
func (m *MockUserRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, set *userdomain.AccountUpdate) (*userdomain.User, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) != nil {
		return args.Get(0).(*userdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdatePassword mock update password
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

// SetRefreshToken mock set refresh token
func (m *MockUserRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, refreshToken string) error {
	args := m.Called(ctx, id, refreshToken)
	return args.Error(0)
}

// RotateRefreshToken mock rotate refresh token
func (m *MockUserRepository) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) (*userdomain.User, error) {
	args := m.Called(ctx, id, oldToken, newToken)
	if args.Get(0) != nil {
		return args.Get(0).(*userdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// ClearRefreshToken mock clear refresh token
func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AddWatchHistory mock add watch history
func (m *MockUserRepository) AddWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

// GetWatchHistory mock get watch history
func (m *MockUserRepository) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]userdomain.WatchHistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]userdomain.WatchHistoryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetChannelProfile mock get channel profile
func (m *MockUserRepository) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*userdomain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) != nil {
		return args.Get(0).(*userdomain.ChannelProfile), args.Error(1)
	}
	return nil, args.Error(1)
}
