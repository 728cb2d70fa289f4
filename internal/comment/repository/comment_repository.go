package repository

import (
	"context"
	"time"

	"video_sharing_service/internal/comment/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository 留言的持久層操作
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) (*domain.CommentPage, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type commentRepository struct {
	coll *mongo.Collection
}

// NewCommentRepository create a CommentRepository backed by the comments collection
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{
		coll: db.Collection("comments"),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	_, err := r.coll.InsertOne(ctx, comment)
	return err
}

func (r *commentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByVideo 新留言在前，join 留言者顯示欄位
func (r *commentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) (*domain.CommentPage, error) {
	filter := bson.M{"video": videoID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner_details",
		}}},
		{{Key: "$unwind", Value: "$owner_details"}},
		{{Key: "$project", Value: bson.M{
			"content":    1,
			"video":      1,
			"owner":      1,
			"created_at": 1,
			"updated_at": 1,
			"owner_details": bson.M{
				"full_name": "$owner_details.full_name",
				"username":  "$owner_details.username",
				"avatar":    "$owner_details.avatar",
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []domain.CommentWithOwner{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	return &domain.CommentPage{
		Total:    total,
		Page:     page,
		Limit:    limit,
		Comments: comments,
	}, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment domain.Comment
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now()}},
		opts,
	).Decode(&comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
