package app

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"video_sharing_service/internal/user/domain"
	"video_sharing_service/internal/user/repository"
	"video_sharing_service/pkg/apierr"
	"video_sharing_service/pkg/database"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/token"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserUseCase 這裡封裝了對外提供的應用服務
type UserUseCase interface {
	Register(ctx context.Context, req *domain.RegisterReq) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginReq) (*domain.AuthResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error
	ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error
	LoadByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*domain.User, error)
	UpdateCover(ctx context.Context, userID primitive.ObjectID, localPath string) (*domain.User, error)
	GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*domain.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WatchHistoryEntry, error)
	AddWatchHistory(ctx context.Context, userID primitive.ObjectID, videoID string) error
}

type userUseCase struct {
	userRepo     repository.UserRepository
	media        database.MediaStore
	sessionRepo  database.RedisRepository[domain.UserSession]
	issuer       string
	hashPassword func(string) (string, error)
}

// NewUserUseCase 建立一個新的 UserUseCase
func NewUserUseCase(userRepo repository.UserRepository,
	media database.MediaStore,
	sessionRepo database.RedisRepository[domain.UserSession],
	issuer string,
	hashPassword func(string) (string, error),
) UserUseCase {
	return &userUseCase{
		userRepo:     userRepo,
		media:        media,
		sessionRepo:  sessionRepo,
		issuer:       issuer,
		hashPassword: hashPassword,
	}
}

// Register 註冊新使用者
func (u *userUseCase) Register(ctx context.Context, req *domain.RegisterReq) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.TrimSpace(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	if username == "" || email == "" || fullName == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apierr.Validation("all fields are required")
	}

	// 檢查 username/email 是否已存在，查詢失敗不能當成「沒有重複」
	existing, err := u.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apierr.Internal("something went wrong while checking existing user")
	}
	if existing != nil {
		return nil, apierr.Conflict("user already exists")
	}

	if req.AvatarLocalPath == "" {
		return nil, apierr.Validation("avatar file is required")
	}

	avatarURL, err := u.uploadImage(ctx, "avatars", req.AvatarLocalPath)
	if err != nil {
		return nil, apierr.Internal("something went wrong while uploading avatar")
	}

	// cover 選填，上傳失敗不擋註冊
	coverURL := ""
	if req.CoverLocalPath != "" {
		url, err := u.uploadImage(ctx, "covers", req.CoverLocalPath)
		if err != nil {
			logger.Log.Errorf("cover image upload failed:", err)
		} else {
			coverURL = url
		}
	}

	pw, err := u.hashPassword(req.Password)
	if err != nil {
		return nil, apierr.Internal("failed to process password")
	}

	now := time.Now()
	user := &domain.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   pw,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, apierr.Internal("something went wrong while registering user")
	}

	return user, nil
}

// Login username 或 email 擇一登入，簽發 access/refresh token
func (u *userUseCase) Login(ctx context.Context, req *domain.LoginReq) (*domain.AuthResult, error) {
	if req.Username == "" && req.Email == "" {
		return nil, apierr.Validation("username or email is required")
	}

	q := &domain.UserQuery{}
	if req.Username != "" {
		lower := strings.ToLower(req.Username)
		q.Username = &lower
	} else {
		q.Email = &req.Email
	}

	user, err := u.userRepo.FindOne(ctx, q)
	if err != nil {
		return nil, apierr.NotFound("user does not exist")
	}

	if err := user.IsPasswordMatch(req.Password); err != nil {
		return nil, apierr.Auth("invalid user credentials")
	}

	access, err := token.GenerateAccessTokenFunc(user.ID.Hex(), u.issuer)
	if err != nil {
		return nil, apierr.Internal("failed to generate access token")
	}
	refresh, err := token.GenerateRefreshTokenFunc(user.ID.Hex(), u.issuer)
	if err != nil {
		return nil, apierr.Internal("failed to generate refresh token")
	}

	// refresh token 持久化在 user document 上，這是輪替比對的依據
	if err := u.userRepo.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, apierr.Internal("failed to persist refresh token")
	}
	u.cacheSession(ctx, user.ID.Hex(), refresh)

	user.RefreshToken = refresh
	return &domain.AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshTokens 輪替 access/refresh token
// 以舊 token 為過濾條件的單次原子更新，被輪替過的 token 重放會失敗
func (u *userUseCase) RefreshTokens(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if refreshToken == "" {
		return nil, apierr.Auth("unauthorized request")
	}

	claims, err := token.ParseRefreshTokenFunc(refreshToken)
	if err != nil {
		return nil, apierr.Auth("refresh token is expired or invalid")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apierr.Auth("invalid refresh token")
	}

	// session 快取先擋掉明顯的重放，快取讀不到就走 Mongo
	if session, err := u.sessionRepo.Get(ctx, claims.UserID); err == nil {
		if session.IsExpired() || session.RefreshToken != refreshToken {
			return nil, apierr.Auth("refresh token is expired or used")
		}
	}

	access, err := token.GenerateAccessTokenFunc(claims.UserID, u.issuer)
	if err != nil {
		return nil, apierr.Internal("failed to generate access token")
	}
	newRefresh, err := token.GenerateRefreshTokenFunc(claims.UserID, u.issuer)
	if err != nil {
		return nil, apierr.Internal("failed to generate refresh token")
	}

	user, err := u.userRepo.RotateRefreshToken(ctx, id, refreshToken, newRefresh)
	if err != nil {
		return nil, apierr.Auth("refresh token is expired or used")
	}
	u.cacheSession(ctx, claims.UserID, newRefresh)

	return &domain.AuthResult{User: user, AccessToken: access, RefreshToken: newRefresh}, nil
}

// Logout 清掉持久化的 refresh token 與 session 快取
func (u *userUseCase) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := u.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return apierr.Internal("failed to clear refresh token")
	}
	if err := u.sessionRepo.Del(ctx, userID.Hex()); err != nil {
		logger.Log.Errorf("session cache delete failed:", err)
	}
	return nil
}

// ChangePassword 需先驗證舊密碼
func (u *userUseCase) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apierr.Validation("new password is required")
	}

	user, err := u.userRepo.FindOne(ctx, &domain.UserQuery{ID: &userID})
	if err != nil {
		return apierr.NotFound("user does not exist")
	}

	if err := user.IsPasswordMatch(oldPassword); err != nil {
		return apierr.Validation("invalid old password")
	}

	pw, err := u.hashPassword(newPassword)
	if err != nil {
		return apierr.Internal("failed to process password")
	}

	if err := u.userRepo.UpdatePassword(ctx, userID, pw); err != nil {
		return apierr.Internal("failed to update password")
	}
	return nil
}

// LoadByID auth middleware 用來解析 token 中的 user
func (u *userUseCase) LoadByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	return u.userRepo.FindOne(ctx, &domain.UserQuery{ID: &id})
}

// UpdateAccount 更新 fullName/email
func (u *userUseCase) UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullName, email string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" && email == "" {
		return nil, apierr.Validation("at least one of fullName or email is required")
	}

	set := &domain.AccountUpdate{}
	if fullName != "" {
		set.FullName = &fullName
	}
	if email != "" {
		set.Email = &email
	}

	user, err := u.userRepo.UpdateAccount(ctx, userID, set)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apierr.NotFound("user does not exist")
		}
		return nil, apierr.Internal("failed to update account")
	}
	return user, nil
}

// UpdateAvatar 上傳新頭像並更新 avatar 欄位
func (u *userUseCase) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apierr.Validation("avatar file is missing")
	}

	url, err := u.uploadImage(ctx, "avatars", localPath)
	if err != nil {
		return nil, apierr.Internal("something went wrong while uploading avatar")
	}

	user, err := u.userRepo.UpdateAccount(ctx, userID, &domain.AccountUpdate{Avatar: &url})
	if err != nil {
		return nil, apierr.Internal("failed to update avatar")
	}
	return user, nil
}

// UpdateCover 上傳新封面並更新 cover_image 欄位
func (u *userUseCase) UpdateCover(ctx context.Context, userID primitive.ObjectID, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apierr.Validation("cover image file is missing")
	}

	url, err := u.uploadImage(ctx, "covers", localPath)
	if err != nil {
		return nil, apierr.Internal("something went wrong while uploading cover image")
	}

	user, err := u.userRepo.UpdateAccount(ctx, userID, &domain.AccountUpdate{CoverImage: &url})
	if err != nil {
		return nil, apierr.Internal("failed to update cover image")
	}
	return user, nil
}

// GetChannelProfile 以 username 查頻道檔案，附帶 viewer 是否已訂閱
func (u *userUseCase) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apierr.Validation("username is required")
	}

	profile, err := u.userRepo.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apierr.NotFound("channel does not exist")
		}
		return nil, apierr.Internal("failed to fetch channel profile")
	}
	return profile, nil
}

// GetWatchHistory 取觀看紀錄（join 影片與上傳者）
func (u *userUseCase) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WatchHistoryEntry, error) {
	entries, err := u.userRepo.GetWatchHistory(ctx, userID)
	if err != nil {
		return nil, apierr.Internal("failed to fetch watch history")
	}
	if entries == nil {
		entries = []domain.WatchHistoryEntry{}
	}
	return entries, nil
}

// AddWatchHistory 加入觀看紀錄，$addToSet 不會重複
func (u *userUseCase) AddWatchHistory(ctx context.Context, userID primitive.ObjectID, videoID string) error {
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return apierr.Validation("invalid video ID")
	}

	if err := u.userRepo.AddWatchHistory(ctx, userID, vid); err != nil {
		return apierr.Internal("failed to update watch history")
	}
	return nil
}

// uploadImage 上傳到 media collaborator 並回傳耐久 URL
func (u *userUseCase) uploadImage(ctx context.Context, prefix, localPath string) (string, error) {
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

// cacheSession session 快取只是輔助，寫入失敗不影響請求
func (u *userUseCase) cacheSession(ctx context.Context, userID, refreshToken string) {
	now := time.Now()
	session := domain.UserSession{
		UserID:       userID,
		RefreshToken: refreshToken,
		CreatedAt:    now,
		ExpiredAt:    now.Add(token.RefreshExpiration()),
	}
	if err := u.sessionRepo.Set(ctx, userID, session, token.RefreshExpiration()); err != nil {
		logger.Log.Errorf("session cache set failed:", err)
		// 留下舊 session 會讓快取判斷失準，寫失敗就整筆清掉
		if delErr := u.sessionRepo.Del(ctx, userID); delErr != nil {
			logger.Log.Errorf("session cache delete failed:", delErr)
		}
	}
}
