package app

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"video_sharing_service/internal/video/domain"
	"video_sharing_service/internal/video/repository"
	"video_sharing_service/pkg"
	"video_sharing_service/pkg/apierr"
	"video_sharing_service/pkg/database"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/media"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 列表只接受這幾個排序欄位，其他一律退回 created_at
var allowedSortFields = []string{"created_at", "views", "duration", "title"}

// VideoUseCase 影片相關的應用服務
type VideoUseCase interface {
	Publish(ctx context.Context, ownerID primitive.ObjectID, req *domain.PublishVideoReq) (*domain.Video, error)
	GetByID(ctx context.Context, videoID string) (*domain.Video, error)
	Search(ctx context.Context, q *domain.VideoQuery) (*domain.VideoPage, error)
	Update(ctx context.Context, videoID string, requesterID primitive.ObjectID, req *domain.UpdateVideoReq) (*domain.Video, error)
	Delete(ctx context.Context, videoID string, requesterID primitive.ObjectID) error
	TogglePublish(ctx context.Context, videoID string, requesterID primitive.ObjectID) (*domain.Video, error)
	IncrementViews(ctx context.Context, videoID string) (*domain.Video, error)
}

type videoUseCase struct {
	videoRepo repository.VideoRepository
	media     database.MediaStore
	events    database.EventWriter
}

// NewVideoUseCase 建立一個新的 VideoUseCase
// events 可以是 nil，此時播放事件只會寫 log
func NewVideoUseCase(videoRepo repository.VideoRepository, mediaStore database.MediaStore, events database.EventWriter) VideoUseCase {
	return &videoUseCase{
		videoRepo: videoRepo,
		media:     mediaStore,
		events:    events,
	}
}

// Publish 發佈影片：上傳影片與縮圖、ffprobe 取長度、建立 document
func (u *videoUseCase) Publish(ctx context.Context, ownerID primitive.ObjectID, req *domain.PublishVideoReq) (*domain.Video, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apierr.Validation("title is required")
	}
	if req.VideoLocalPath == "" || req.ThumbnailLocalPath == "" {
		return nil, apierr.Validation("video file and thumbnail are required")
	}

	duration, err := media.ProbeDurationFunc(req.VideoLocalPath)
	if err != nil {
		logger.Log.Errorf("ffprobe failed:", err)
		return nil, apierr.Validation("could not read video duration")
	}

	videoURL, err := u.upload(ctx, "videos", req.VideoLocalPath)
	if err != nil {
		return nil, apierr.Internal("something went wrong while uploading video")
	}
	thumbnailURL, err := u.upload(ctx, "thumbnails", req.ThumbnailLocalPath)
	if err != nil {
		return nil, apierr.Internal("something went wrong while uploading thumbnail")
	}

	now := time.Now()
	video := &domain.Video{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Duration:    duration,
		IsPublished: true,
		Owner:       ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.videoRepo.Create(ctx, video); err != nil {
		return nil, apierr.Internal("failed to publish video")
	}
	return video, nil
}

func (u *videoUseCase) GetByID(ctx context.Context, videoID string) (*domain.Video, error) {
	id, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apierr.Validation("invalid video ID")
	}

	video, err := u.videoRepo.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apierr.NotFound("video does not exist")
		}
		return nil, apierr.Internal("failed to fetch video")
	}
	return video, nil
}

// Search 正規化分頁與排序條件後轉給 repository
func (u *videoUseCase) Search(ctx context.Context, q *domain.VideoQuery) (*domain.VideoPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if !pkg.Contains(allowedSortFields, q.SortBy) {
		q.SortBy = "created_at"
	}
	if q.SortType != "asc" {
		q.SortType = "desc"
	}

	page, err := u.videoRepo.Search(ctx, q)
	if err != nil {
		return nil, apierr.Internal("failed to fetch videos")
	}
	return page, nil
}

// Update 只有影片擁有者能更新
func (u *videoUseCase) Update(ctx context.Context, videoID string, requesterID primitive.ObjectID, req *domain.UpdateVideoReq) (*domain.Video, error) {
	video, err := u.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := apierr.RequireOwner(video.Owner.Hex(), requesterID.Hex(), "video"); err != nil {
		return nil, err
	}

	if req.Title == nil && req.Description == nil && req.ThumbnailLocalPath == "" {
		return nil, apierr.Validation("at least one field is required")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apierr.Validation("title cannot be blank")
	}

	set := &domain.VideoUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.ThumbnailLocalPath != "" {
		url, err := u.upload(ctx, "thumbnails", req.ThumbnailLocalPath)
		if err != nil {
			return nil, apierr.Internal("something went wrong while uploading thumbnail")
		}
		set.Thumbnail = &url
	}

	updated, err := u.videoRepo.Update(ctx, video.ID, set)
	if err != nil {
		return nil, apierr.Internal("failed to update video")
	}
	return updated, nil
}

// Delete 只有影片擁有者能刪除
func (u *videoUseCase) Delete(ctx context.Context, videoID string, requesterID primitive.ObjectID) error {
	video, err := u.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if err := apierr.RequireOwner(video.Owner.Hex(), requesterID.Hex(), "video"); err != nil {
		return err
	}

	if err := u.videoRepo.Delete(ctx, video.ID); err != nil {
		return apierr.Internal("failed to delete video")
	}
	return nil
}

// TogglePublish 切換上架狀態，只有擁有者能操作
func (u *videoUseCase) TogglePublish(ctx context.Context, videoID string, requesterID primitive.ObjectID) (*domain.Video, error) {
	video, err := u.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := apierr.RequireOwner(video.Owner.Hex(), requesterID.Hex(), "video"); err != nil {
		return nil, err
	}

	next := !video.IsPublished
	updated, err := u.videoRepo.Update(ctx, video.ID, &domain.VideoUpdate{IsPublished: &next})
	if err != nil {
		return nil, apierr.Internal("failed to toggle publish status")
	}
	return updated, nil
}

// IncrementViews 原子加一後發播放事件，事件失敗不影響回應
func (u *videoUseCase) IncrementViews(ctx context.Context, videoID string) (*domain.Video, error) {
	id, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apierr.Validation("invalid video ID")
	}

	video, err := u.videoRepo.IncrementViews(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apierr.NotFound("video does not exist")
		}
		return nil, apierr.Internal("failed to update views")
	}

	u.publishViewEvent(ctx, video)
	return video, nil
}

// publishViewEvent fire-and-forget，kafka 掛掉只寫 log
func (u *videoUseCase) publishViewEvent(ctx context.Context, video *domain.Video) {
	if u.events == nil {
		return
	}

	event := domain.ViewEvent{
		VideoID:   video.ID.Hex(),
		OwnerID:   video.Owner.Hex(),
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorf("marshal view event failed:", err)
		return
	}

	if err := u.events.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.VideoID),
		Value: payload,
	}); err != nil {
		logger.Log.Errorf("publish view event failed:", err)
	}
}

func (u *videoUseCase) upload(ctx context.Context, prefix, localPath string) (string, error) {
	ext := filepath.Ext(localPath)
	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := u.media.UploadFile(ctx, objectName, localPath, contentType); err != nil {
		return "", err
	}
	return u.media.PublicURL(objectName), nil
}
