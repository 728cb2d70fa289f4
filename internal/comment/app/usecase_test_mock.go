package app

import (
	"context"

	"video_sharing_service/internal/comment/domain"
	videodomain "video_sharing_service/internal/video/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCommentRepository Mock CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

// Create mock create comment
func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// GetByID mock get comment by id
func (m *MockCommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByVideo mock list comments by video
func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) (*domain.CommentPage, error) {
	args := m.Called(ctx, videoID, page, limit)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.CommentPage), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateContent mock update comment content
func (m *MockCommentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete mock delete comment
func (m *MockCommentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVideoRepository Mock video repository for comment tests
type MockVideoRepository struct {
	mock.Mock
}

// Create mock create video
func (m *MockVideoRepository) Create(ctx context.Context, video *videodomain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

// GetByID mock get video by id
func (m *MockVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*videodomain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*videodomain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// Search mock search videos
func (m *MockVideoRepository) Search(ctx context.Context, q *videodomain.VideoQuery) (*videodomain.VideoPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).(*videodomain.VideoPage), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update mock update video
func (m *MockVideoRepository) Update(ctx context.Context, id primitive.ObjectID, set *videodomain.VideoUpdate) (*videodomain.Video, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) != nil {
		return args.Get(0).(*videodomain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete mock delete video
func (m *MockVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// IncrementViews mock increment views
func (m *MockVideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*videodomain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*videodomain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}
