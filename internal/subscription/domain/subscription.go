package domain

import (
	"time"

	userdomain "video_sharing_service/internal/user/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription 訂閱關係，(subscriber, channel) 唯一
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// ToggleResult 切換訂閱的結果
type ToggleResult struct {
	Subscribed bool `json:"subscribed"`
}

// SubscriberEntry 頻道的訂閱者清單項目
type SubscriberEntry struct {
	ID         primitive.ObjectID      `bson:"_id" json:"id"`
	Subscriber userdomain.OwnerDetails `bson:"subscriber_details" json:"subscriber"`
	CreatedAt  time.Time               `bson:"created_at" json:"createdAt"`
}

// ChannelEntry 使用者訂閱的頻道清單項目
type ChannelEntry struct {
	ID        primitive.ObjectID      `bson:"_id" json:"id"`
	Channel   userdomain.OwnerDetails `bson:"channel_details" json:"channel"`
	CreatedAt time.Time               `bson:"created_at" json:"createdAt"`
}
