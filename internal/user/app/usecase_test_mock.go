package app

import (
	"context"
	"time"

	"video_sharing_service/internal/user/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

// Create mock create user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// FindOne mock find one user
func (m *MockUserRepository) FindOne(ctx context.Context, q *domain.UserQuery) (*domain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUsernameOrEmail mock find user by username or email
func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateAccount mock update account fields
func (m *MockUserRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, set *domain.AccountUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
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
func (m *MockUserRepository) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) (*domain.User, error) {
	args := m.Called(ctx, id, oldToken, newToken)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
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
func (m *MockUserRepository) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WatchHistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.WatchHistoryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetChannelProfile mock get channel profile
func (m *MockUserRepository) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ChannelProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMediaStore Mock MediaStore
type MockMediaStore struct {
	mock.Mock
}

// UploadFile mock upload file
func (m *MockMediaStore) UploadFile(ctx context.Context, objectName, filePath, contentType string) error {
	args := m.Called(ctx, objectName, filePath, contentType)
	return args.Error(0)
}

// PublicURL mock public url
func (m *MockMediaStore) PublicURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

// MockSessionRepository Mock RedisRepository[domain.UserSession]
type MockSessionRepository struct {
	mock.Mock
}

// Set mock set session
func (m *MockSessionRepository) Set(ctx context.Context, key string, value domain.UserSession, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Get mock get session
func (m *MockSessionRepository) Get(ctx context.Context, key string) (domain.UserSession, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.UserSession), args.Error(1)
}

// Del mock delete session
func (m *MockSessionRepository) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
