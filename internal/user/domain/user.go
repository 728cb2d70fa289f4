package domain

import (
	"time"

	"video_sharing_service/pkg/encrypt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User users collection document
// password 與 refresh token 永遠不出現在 response body
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	FullName     string               `bson:"full_name" json:"fullName"`
	Password     string               `bson:"password" json:"-"`
	Avatar       string               `bson:"avatar" json:"avatar"`
	CoverImage   string               `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	RefreshToken string               `bson:"refresh_token,omitempty" json:"-"`
	WatchHistory []primitive.ObjectID `bson:"watch_history,omitempty" json:"-"`
	CreatedAt    time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}

// IsPasswordMatch 密碼驗證
func (u *User) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(u.Password, inputPwd)
}

// UserSession cached session entry (redis)
type UserSession struct {
	UserID       string    `json:"UserID"`
	RefreshToken string    `json:"RefreshToken"`
	CreatedAt    time.Time `json:"CreatedAt"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsExpired 檢查 Session 是否已過期
func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// UserQuery join conditions are used to query users
type UserQuery struct {
	ID       *primitive.ObjectID
	Username *string
	Email    *string
}

// RegisterReq usecase register request
type RegisterReq struct {
	Username string
	Email    string
	FullName string
	Password string

	// 已存到本地暫存的上傳檔案路徑
	AvatarLocalPath string
	CoverLocalPath  string
}

// LoginReq usecase login request, username 或 email 擇一
type LoginReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult usecase login/refresh response
type AuthResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccountUpdate partial update of the user document, nil = keep
type AccountUpdate struct {
	FullName   *string
	Email      *string
	Avatar     *string
	CoverImage *string
}

// OwnerDetails display fields joined into comments, videos and listings
type OwnerDetails struct {
	FullName string `bson:"full_name" json:"fullName"`
	Username string `bson:"username" json:"username"`
	Avatar   string `bson:"avatar" json:"avatar"`
}

// ChannelProfile aggregated view of a user in the channel role
type ChannelProfile struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	Username          string             `bson:"username" json:"username"`
	Email             string             `bson:"email" json:"email"`
	FullName          string             `bson:"full_name" json:"fullName"`
	Avatar            string             `bson:"avatar" json:"avatar"`
	CoverImage        string             `bson:"cover_image" json:"coverImage"`
	SubscribersCount  int64              `bson:"subscribers_count" json:"subscribersCount"`
	SubscribedToCount int64              `bson:"subscribed_to_count" json:"subscribedToCount"`
	IsSubscribed      bool               `bson:"is_subscribed" json:"isSubscribed"`
}

// WatchHistoryEntry watched video joined with its owner display fields
type WatchHistoryEntry struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Thumbnail string             `bson:"thumbnail" json:"thumbnail"`
	Duration  float64            `bson:"duration" json:"duration"`
	Views     uint64             `bson:"views" json:"views"`
	Owner     OwnerDetails       `bson:"owner" json:"owner"`
}
