package app

import (
	"context"

	"video_sharing_service/internal/video/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockVideoRepository Mock VideoRepository
type MockVideoRepository struct {
	mock.Mock
}

// Create mock create video
func (m *MockVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

// GetByID mock get video by id
func (m *MockVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// Search mock search videos
func (m *MockVideoRepository) Search(ctx context.Context, q *domain.VideoQuery) (*domain.VideoPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoPage), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update mock update video
func (m *MockVideoRepository) Update(ctx context.Context, id primitive.ObjectID, set *domain.VideoUpdate) (*domain.Video, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete mock delete video
func (m *MockVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// IncrementViews mock increment views
func (m *MockVideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Video), args.Error(1)
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

// MockEventWriter Mock EventWriter
type MockEventWriter struct {
	mock.Mock
}

// WriteMessages mock write kafka messages
func (m *MockEventWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}
