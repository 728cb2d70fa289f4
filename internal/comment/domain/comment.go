package domain

import (
	"time"

	userdomain "video_sharing_service/internal/user/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 留言 document
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CommentWithOwner 留言加上留言者的顯示欄位（aggregation join）
type CommentWithOwner struct {
	ID           primitive.ObjectID      `bson:"_id" json:"id"`
	Content      string                  `bson:"content" json:"content"`
	Video        primitive.ObjectID      `bson:"video" json:"video"`
	Owner        primitive.ObjectID      `bson:"owner" json:"owner"`
	OwnerDetails userdomain.OwnerDetails `bson:"owner_details" json:"ownerDetails"`
	CreatedAt    time.Time               `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time               `bson:"updated_at" json:"updatedAt"`
}

// CommentPage 分頁結果
type CommentPage struct {
	Total    int64              `json:"total"`
	Page     int64              `json:"page"`
	Limit    int64              `json:"limit"`
	Comments []CommentWithOwner `json:"comments"`
}
