package app

import (
	"context"
	"strings"
	"time"

	"video_sharing_service/internal/comment/domain"
	"video_sharing_service/internal/comment/repository"
	videorepo "video_sharing_service/internal/video/repository"
	"video_sharing_service/pkg/apierr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentUseCase 留言相關的應用服務
type CommentUseCase interface {
	Add(ctx context.Context, videoID string, ownerID primitive.ObjectID, content string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID string, page, limit int64) (*domain.CommentPage, error)
	Update(ctx context.Context, commentID string, requesterID primitive.ObjectID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID string, requesterID primitive.ObjectID) error
}

type commentUseCase struct {
	commentRepo repository.CommentRepository
	videoRepo   videorepo.VideoRepository
}

// NewCommentUseCase 建立一個新的 CommentUseCase
func NewCommentUseCase(commentRepo repository.CommentRepository, videoRepo videorepo.VideoRepository) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

// Add 留言前先確認影片存在
func (u *commentUseCase) Add(ctx context.Context, videoID string, ownerID primitive.ObjectID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.Validation("content is required")
	}

	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apierr.Validation("invalid video ID")
	}

	if _, err := u.videoRepo.GetByID(ctx, vid); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apierr.NotFound("video does not exist")
		}
		return nil, apierr.Internal("failed to fetch video")
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Video:     vid,
		Owner:     ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.commentRepo.Create(ctx, comment); err != nil {
		return nil, apierr.Internal("failed to add comment")
	}
	return comment, nil
}

func (u *commentUseCase) ListByVideo(ctx context.Context, videoID string, page, limit int64) (*domain.CommentPage, error) {
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apierr.Validation("invalid video ID")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	result, err := u.commentRepo.ListByVideo(ctx, vid, page, limit)
	if err != nil {
		return nil, apierr.Internal("failed to fetch comments")
	}
	return result, nil
}

// Update 只有留言者本人能改
func (u *commentUseCase) Update(ctx context.Context, commentID string, requesterID primitive.ObjectID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.Validation("content is required")
	}

	comment, err := u.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := apierr.RequireOwner(comment.Owner.Hex(), requesterID.Hex(), "comment"); err != nil {
		return nil, err
	}

	updated, err := u.commentRepo.UpdateContent(ctx, comment.ID, content)
	if err != nil {
		return nil, apierr.Internal("failed to update comment")
	}
	return updated, nil
}

// Delete 只有留言者本人能刪
func (u *commentUseCase) Delete(ctx context.Context, commentID string, requesterID primitive.ObjectID) error {
	comment, err := u.loadComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := apierr.RequireOwner(comment.Owner.Hex(), requesterID.Hex(), "comment"); err != nil {
		return err
	}

	if err := u.commentRepo.Delete(ctx, comment.ID); err != nil {
		return apierr.Internal("failed to delete comment")
	}
	return nil
}

func (u *commentUseCase) loadComment(ctx context.Context, commentID string) (*domain.Comment, error) {
	id, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, apierr.Validation("invalid comment ID")
	}

	comment, err := u.commentRepo.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apierr.NotFound("comment does not exist")
		}
		return nil, apierr.Internal("failed to fetch comment")
	}
	return comment, nil
}
