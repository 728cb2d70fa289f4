package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video 影片 document
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	VideoFile   string             `bson:"video_file" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       uint64             `bson:"views" json:"views"`
	IsPublished bool               `bson:"is_published" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// VideoQuery 影片列表的查詢條件
type VideoQuery struct {
	Title         string
	Owner         *primitive.ObjectID
	PublishedOnly bool
	SortBy        string
	SortType      string
	Page          int64
	Limit         int64
}

// VideoPage 分頁結果
type VideoPage struct {
	Total  int64   `json:"total"`
	Page   int64   `json:"page"`
	Limit  int64   `json:"limit"`
	Videos []Video `json:"videos"`
}

// PublishVideoReq 發佈影片的輸入
type PublishVideoReq struct {
	Title              string
	Description        string
	VideoLocalPath     string
	ThumbnailLocalPath string
}

// UpdateVideoReq 更新影片的輸入，nil 表示不動該欄位
type UpdateVideoReq struct {
	Title              *string
	Description        *string
	ThumbnailLocalPath string
}

// VideoUpdate repository 層的欄位更新
type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
	IsPublished *bool
}

// ViewEvent 播放事件，非同步發到 kafka
type ViewEvent struct {
	VideoID   string    `json:"videoId"`
	OwnerID   string    `json:"ownerId"`
	Timestamp time.Time `json:"ts"`
}
