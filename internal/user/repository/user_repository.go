package repository

import (
	"context"
	"time"

	"video_sharing_service/internal/user/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository definition get user info
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindOne(ctx context.Context, q *domain.UserQuery) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	UpdateAccount(ctx context.Context, id primitive.ObjectID, set *domain.AccountUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, refreshToken string) error
	RotateRefreshToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) (*domain.User, error)
	ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error
	AddWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error
	GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WatchHistoryEntry, error)
	GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*domain.ChannelProfile, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository create a UserRepository backed by the users collection
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		coll: db.Collection("users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	return err
}

func (r *userRepository) FindOne(ctx context.Context, q *domain.UserQuery) (*domain.User, error) {
	filter := bson.M{}
	if q.ID != nil {
		filter["_id"] = *q.ID
	}
	if q.Username != nil {
		filter["username"] = *q.Username
	}
	if q.Email != nil {
		filter["email"] = *q.Email
	}

	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail 註冊前的重複檢查（$or）
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}

	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, set *domain.AccountUpdate) (*domain.User, error) {
	fields := bson.M{"updated_at": time.Now()}
	if set.FullName != nil {
		fields["full_name"] = *set.FullName
	}
	if set.Email != nil {
		fields["email"] = *set.Email
	}
	if set.Avatar != nil {
		fields["avatar"] = *set.Avatar
	}
	if set.CoverImage != nil {
		fields["cover_image"] = *set.CoverImage
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user domain.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":   hashedPassword,
		"updated_at": time.Now(),
	}})
	return err
}

func (r *userRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, refreshToken string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"refresh_token": refreshToken,
		"updated_at":    time.Now(),
	}})
	return err
}

// RotateRefreshToken 以舊 token 作為過濾條件的單次原子更新
// 舊 token 已被輪替過時比對不到文件，重放直接失敗
func (r *userRepository) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) (*domain.User, error) {
	filter := bson.M{"_id": id, "refresh_token": oldToken}
	update := bson.M{"$set": bson.M{
		"refresh_token": newToken,
		"updated_at":    time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user domain.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$unset": bson.M{"refresh_token": 1},
		"$set":   bson.M{"updated_at": time.Now()},
	})
	return err
}

// AddWatchHistory $addToSet 保證無重複
func (r *userRepository) AddWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"watch_history": videoID},
	})
	return err
}

func (r *userRepository) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WatchHistoryEntry, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: userID}}}},
		bson.D{{Key: "$unwind", Value: "$watch_history"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "videos"},
			{Key: "localField", Value: "watch_history"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
		}}},
		bson.D{{Key: "$unwind", Value: "$video"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "video.owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video_owner"},
		}}},
		bson.D{{Key: "$unwind", Value: "$video_owner"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$video._id"},
			{Key: "title", Value: "$video.title"},
			{Key: "thumbnail", Value: "$video.thumbnail"},
			{Key: "duration", Value: "$video.duration"},
			{Key: "views", Value: "$video.views"},
			{Key: "owner", Value: bson.D{
				{Key: "full_name", Value: "$video_owner.full_name"},
				{Key: "username", Value: "$video_owner.username"},
				{Key: "avatar", Value: "$video_owner.avatar"},
			}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var entries []domain.WatchHistoryEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetChannelProfile 一次聚合算出訂閱數、已訂閱頻道數與 viewer 是否已訂閱
func (r *userRepository) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*domain.ChannelProfile, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "username", Value: username}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "subscriptions"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "subscriptions"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber"},
			{Key: "as", Value: "subscribed_to"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "subscribers_count", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "subscribed_to_count", Value: bson.D{{Key: "$size", Value: "$subscribed_to"}}},
			{Key: "is_subscribed", Value: bson.D{{Key: "$in", Value: bson.A{viewerID, "$subscribers.subscriber"}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "email", Value: 1},
			{Key: "full_name", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "cover_image", Value: 1},
			{Key: "subscribers_count", Value: 1},
			{Key: "subscribed_to_count", Value: 1},
			{Key: "is_subscribed", Value: 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var profiles []domain.ChannelProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &profiles[0], nil
}
