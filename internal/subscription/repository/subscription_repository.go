package repository

import (
	"context"
	"time"

	"video_sharing_service/internal/subscription/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubscriptionRepository 訂閱關係的持久層操作
type SubscriptionRepository interface {
	EnsureIndexes(ctx context.Context) error
	DeleteByPair(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	UpsertPair(ctx context.Context, subscriber, channel primitive.ObjectID) error
	ListSubscribers(ctx context.Context, channel primitive.ObjectID) ([]domain.SubscriberEntry, error)
	ListSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]domain.ChannelEntry, error)
}

type subscriptionRepository struct {
	coll *mongo.Collection
}

// NewSubscriptionRepository create a SubscriptionRepository backed by the subscriptions collection
func NewSubscriptionRepository(db *mongo.Database) SubscriptionRepository {
	return &subscriptionRepository{
		coll: db.Collection("subscriptions"),
	}
}

// EnsureIndexes (subscriber, channel) 唯一索引，擋掉併發 toggle 造成的重複
func (r *subscriptionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "subscriber", Value: 1},
			{Key: "channel", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// DeleteByPair 回傳是否真的刪到文件
func (r *subscriptionRepository) DeleteByPair(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{
		"subscriber": subscriber,
		"channel":    channel,
	})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// UpsertPair upsert 配合唯一索引，重複訂閱不會多出文件
func (r *subscriptionRepository) UpsertPair(ctx context.Context, subscriber, channel primitive.ObjectID) error {
	filter := bson.M{
		"subscriber": subscriber,
		"channel":    channel,
	}
	update := bson.M{"$setOnInsert": bson.M{
		"subscriber": subscriber,
		"channel":    channel,
		"created_at": time.Now(),
	}}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListSubscribers join 出訂閱者的顯示欄位
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channel primitive.ObjectID) ([]domain.SubscriberEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"channel": channel}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "subscriber",
			"foreignField": "_id",
			"as":           "subscriber_details",
		}}},
		{{Key: "$unwind", Value: "$subscriber_details"}},
		{{Key: "$project", Value: bson.M{
			"created_at": 1,
			"subscriber_details": bson.M{
				"full_name": "$subscriber_details.full_name",
				"username":  "$subscriber_details.username",
				"avatar":    "$subscriber_details.avatar",
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.SubscriberEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListSubscribedChannels join 出頻道的顯示欄位
func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]domain.ChannelEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"subscriber": subscriber}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "channel",
			"foreignField": "_id",
			"as":           "channel_details",
		}}},
		{{Key: "$unwind", Value: "$channel_details"}},
		{{Key: "$project", Value: bson.M{
			"created_at": 1,
			"channel_details": bson.M{
				"full_name": "$channel_details.full_name",
				"username":  "$channel_details.username",
				"avatar":    "$channel_details.avatar",
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.ChannelEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
