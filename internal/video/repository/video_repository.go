package repository

import (
	"context"
	"time"

	"video_sharing_service/internal/video/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VideoRepository 影片的持久層操作
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	Search(ctx context.Context, q *domain.VideoQuery) (*domain.VideoPage, error)
	Update(ctx context.Context, id primitive.ObjectID, set *domain.VideoUpdate) (*domain.Video, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
}

type videoRepository struct {
	coll *mongo.Collection
}

// NewVideoRepository create a VideoRepository backed by the videos collection
func NewVideoRepository(db *mongo.Database) VideoRepository {
	return &videoRepository{
		coll: db.Collection("videos"),
	}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	_, err := r.coll.InsertOne(ctx, video)
	return err
}

func (r *videoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&video); err != nil {
		return nil, err
	}
	return &video, nil
}

// Search 條件查詢加分頁，total 是過濾後的總數不是單頁筆數
func (r *videoRepository) Search(ctx context.Context, q *domain.VideoQuery) (*domain.VideoPage, error) {
	filter := bson.M{}
	if q.Title != "" {
		// 不分大小寫的子字串比對
		filter["title"] = bson.M{"$regex": q.Title, "$options": "i"}
	}
	if q.Owner != nil {
		filter["owner"] = *q.Owner
	}
	if q.PublishedOnly {
		filter["is_published"] = true
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortOrder := -1
	if q.SortType == "asc" {
		sortOrder = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.SortBy, Value: sortOrder}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []domain.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}

	return &domain.VideoPage{
		Total:  total,
		Page:   q.Page,
		Limit:  q.Limit,
		Videos: videos,
	}, nil
}

func (r *videoRepository) Update(ctx context.Context, id primitive.ObjectID, set *domain.VideoUpdate) (*domain.Video, error) {
	fields := bson.M{"updated_at": time.Now()}
	if set.Title != nil {
		fields["title"] = *set.Title
	}
	if set.Description != nil {
		fields["description"] = *set.Description
	}
	if set.Thumbnail != nil {
		fields["thumbnail"] = *set.Thumbnail
	}
	if set.IsPublished != nil {
		fields["is_published"] = *set.IsPublished
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var video domain.Video
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&video)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementViews $inc 原子加一，回傳更新後的文件
func (r *videoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var video domain.Video
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&video)
	if err != nil {
		return nil, err
	}
	return &video, nil
}
