package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"video_sharing_service/internal/user/domain"
	"video_sharing_service/pkg/apierr"
	"video_sharing_service/pkg/encrypt"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestUseCase(repo *MockUserRepository, media *MockMediaStore, session *MockSessionRepository) UserUseCase {
	return NewUserUseCase(repo, media, session, "video_sharing_service", encrypt.HashPassword)
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	logger.SetNewNop()

	req := func() *domain.RegisterReq {
		return &domain.RegisterReq{
			Username:        "Alice",
			Email:           "alice@example.com",
			FullName:        "Alice Chen",
			Password:        "pw",
			AvatarLocalPath: "/tmp/avatar.png",
		}
	}

	// **情境 1: 註冊成功**
	t.Run("成功註冊", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		// username 比對時必須已轉小寫
		mockRepo.On("FindByUsernameOrEmail", ctx, "alice", "alice@example.com").
			Return(nil, mongo.ErrNoDocuments).Once()
		mockMedia.On("UploadFile", ctx, mock.Anything, "/tmp/avatar.png", mock.Anything).
			Return(nil).Once()
		mockMedia.On("PublicURL", mock.Anything).
			Return("http://minio.local/media/avatars/a.png").Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		user, err := uc.Register(ctx, req())

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "http://minio.local/media/avatars/a.png", user.Avatar)
		assert.NotEqual(t, "pw", user.Password) // 存進去的必須是 hash
		mockRepo.AssertExpectations(t)
		mockMedia.AssertExpectations(t)
	})

	// **情境 2: username 已存在（大小寫不同也算重複）**
	t.Run("使用者已存在", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		existing := &domain.User{ID: primitive.NewObjectID(), Username: "alice"}
		mockRepo.On("FindByUsernameOrEmail", ctx, "alice", "alice@example.com").
			Return(existing, nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.Register(ctx, req())

		assert.Error(t, err)
		assert.Equal(t, "user already exists", err.Error())
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	// **情境 2b: 重複檢查查詢失敗，必須擋下註冊**
	t.Run("重複檢查資料庫錯誤", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("FindByUsernameOrEmail", ctx, "alice", "alice@example.com").
			Return(nil, errors.New("mongo: connection reset")).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		user, err := uc.Register(ctx, req())

		assert.Error(t, err)
		assert.Nil(t, user)
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	// **情境 3: 缺少必填欄位**
	t.Run("缺少必填欄位", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		r := req()
		r.Email = "   "

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.Register(ctx, r)

		assert.Error(t, err)
		assert.Equal(t, "all fields are required", err.Error())
		mockRepo.AssertNotCalled(t, "Create")
	})

	// **情境 4: 缺少頭像**
	t.Run("缺少頭像", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("FindByUsernameOrEmail", ctx, "alice", "alice@example.com").
			Return(nil, mongo.ErrNoDocuments).Once()

		r := req()
		r.AvatarLocalPath = ""

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.Register(ctx, r)

		assert.Error(t, err)
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		mockMedia.AssertNotCalled(t, "UploadFile")
	})

	// **情境 5: 頭像上傳失敗**
	t.Run("頭像上傳失敗", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("FindByUsernameOrEmail", ctx, "alice", "alice@example.com").
			Return(nil, mongo.ErrNoDocuments).Once()
		mockMedia.On("UploadFile", ctx, mock.Anything, "/tmp/avatar.png", mock.Anything).
			Return(errors.New("minio down")).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.Register(ctx, req())

		assert.Error(t, err)
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		mockRepo.AssertNotCalled(t, "Create")
	})

	// **情境 6: 封面上傳失敗不擋註冊**
	t.Run("封面上傳失敗仍註冊成功", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("FindByUsernameOrEmail", ctx, "alice", "alice@example.com").
			Return(nil, mongo.ErrNoDocuments).Once()
		mockMedia.On("UploadFile", ctx, mock.Anything, "/tmp/avatar.png", mock.Anything).
			Return(nil).Once()
		mockMedia.On("PublicURL", mock.Anything).
			Return("http://minio.local/media/avatars/a.png").Once()
		mockMedia.On("UploadFile", ctx, mock.Anything, "/tmp/cover.png", mock.Anything).
			Return(errors.New("minio down")).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		r := req()
		r.CoverLocalPath = "/tmp/cover.png"

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		user, err := uc.Register(ctx, r)

		assert.NoError(t, err)
		assert.Empty(t, user.CoverImage)
		mockRepo.AssertExpectations(t)
		mockMedia.AssertExpectations(t)
	})
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()
	password := "pw"
	hashedPassword, _ := encrypt.HashPassword(password)

	logger.SetNewNop()

	existing := func() *domain.User {
		return &domain.User{
			ID:       primitive.NewObjectID(),
			Username: "alice",
			Email:    "alice@example.com",
			Password: hashedPassword,
		}
	}

	// **情境 1: 成功登入**
	t.Run("成功登入", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)
		user := existing()
		username := "alice"

		mockRepo.On("FindOne", ctx, &domain.UserQuery{Username: &username}).
			Return(user, nil).Once()
		mockRepo.On("SetRefreshToken", ctx, user.ID, mock.Anything).
			Return(nil).Once()
		mockSession.On("Set", ctx, user.ID.Hex(), mock.Anything, mock.Anything).
			Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		result, err := uc.Login(ctx, &domain.LoginReq{Username: "Alice", Password: password})

		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		// 回傳的 user 必須帶著剛簽發的 refresh token
		assert.Equal(t, result.RefreshToken, result.User.RefreshToken)
		mockRepo.AssertExpectations(t)
		mockSession.AssertExpectations(t)
	})

	// **情境 2: 使用者不存在**
	t.Run("使用者不存在", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)
		username := "ghost"

		mockRepo.On("FindOne", ctx, &domain.UserQuery{Username: &username}).
			Return(nil, mongo.ErrNoDocuments).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.Login(ctx, &domain.LoginReq{Username: "ghost", Password: password})

		assert.Error(t, err)
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	// **情境 3: 密碼錯誤**
	t.Run("密碼錯誤", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)
		user := existing()
		username := "alice"

		mockRepo.On("FindOne", ctx, &domain.UserQuery{Username: &username}).
			Return(user, nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.Login(ctx, &domain.LoginReq{Username: "alice", Password: "wrong_password"})

		assert.Error(t, err)
		assert.Equal(t, "invalid user credentials", err.Error())
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		mockRepo.AssertNotCalled(t, "SetRefreshToken")
	})

	// **情境 4: 沒帶 username 也沒帶 email**
	t.Run("缺少登入識別", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.Login(ctx, &domain.LoginReq{Password: password})

		assert.Error(t, err)
		assert.Equal(t, "username or email is required", err.Error())
	})
}

func TestUserUseCase_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	logger.SetNewNop()

	// **情境 1: 成功輪替**
	t.Run("成功輪替", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		oldRefresh, err := token.GenerateRefreshToken(userID.Hex(), "video_sharing_service")
		assert.NoError(t, err)

		user := &domain.User{ID: userID, Username: "alice"}
		cached := domain.UserSession{
			UserID:       userID.Hex(),
			RefreshToken: oldRefresh,
			CreatedAt:    time.Now(),
			ExpiredAt:    time.Now().Add(time.Hour),
		}
		mockSession.On("Get", ctx, userID.Hex()).Return(cached, nil).Once()
		mockRepo.On("RotateRefreshToken", ctx, userID, oldRefresh, mock.Anything).
			Return(user, nil).Once()
		mockSession.On("Set", ctx, userID.Hex(), mock.Anything, mock.Anything).
			Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		result, err := uc.RefreshTokens(ctx, oldRefresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEqual(t, oldRefresh, result.RefreshToken) // 新舊 refresh token 必須不同
		mockRepo.AssertExpectations(t)
		mockSession.AssertExpectations(t)
	})

	// **情境 2: 已被輪替過的 token 重放**
	t.Run("重放已使用的 token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		usedRefresh, err := token.GenerateRefreshToken(userID.Hex(), "video_sharing_service")
		assert.NoError(t, err)

		// 快取讀不到時走 Mongo；原子輪替的過濾條件比對不到舊 token，mongo 回傳 no documents
		mockSession.On("Get", ctx, userID.Hex()).
			Return(domain.UserSession{}, errors.New("session not found")).Once()
		mockRepo.On("RotateRefreshToken", ctx, userID, usedRefresh, mock.Anything).
			Return(nil, mongo.ErrNoDocuments).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err = uc.RefreshTokens(ctx, usedRefresh)

		assert.Error(t, err)
		assert.Equal(t, "refresh token is expired or used", err.Error())
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	// **情境 2b: 快取攔截重放，不用打到 Mongo**
	t.Run("快取攔截重放", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		usedRefresh, err := token.GenerateRefreshToken(userID.Hex(), "video_sharing_service")
		assert.NoError(t, err)

		// 快取裡的 token 已經是輪替後的新值
		cached := domain.UserSession{
			UserID:       userID.Hex(),
			RefreshToken: "rotated-to-something-else",
			CreatedAt:    time.Now(),
			ExpiredAt:    time.Now().Add(time.Hour),
		}
		mockSession.On("Get", ctx, userID.Hex()).Return(cached, nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err = uc.RefreshTokens(ctx, usedRefresh)

		assert.Error(t, err)
		assert.Equal(t, "refresh token is expired or used", err.Error())
		mockRepo.AssertNotCalled(t, "RotateRefreshToken")
		mockSession.AssertExpectations(t)
	})

	// **情境 2c: 快取裡的 session 已過期**
	t.Run("快取 session 過期", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		staleRefresh, err := token.GenerateRefreshToken(userID.Hex(), "video_sharing_service")
		assert.NoError(t, err)

		cached := domain.UserSession{
			UserID:       userID.Hex(),
			RefreshToken: staleRefresh,
			CreatedAt:    time.Now().Add(-2 * time.Hour),
			ExpiredAt:    time.Now().Add(-time.Hour),
		}
		mockSession.On("Get", ctx, userID.Hex()).Return(cached, nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err = uc.RefreshTokens(ctx, staleRefresh)

		assert.Error(t, err)
		assert.Equal(t, "refresh token is expired or used", err.Error())
		mockRepo.AssertNotCalled(t, "RotateRefreshToken")
	})

	// **情境 3: 無效的 refresh token**
	t.Run("無效的 refresh token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.RefreshTokens(ctx, "not-a-jwt")

		assert.Error(t, err)
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		mockRepo.AssertNotCalled(t, "RotateRefreshToken")
	})

	// **情境 4: 空的 refresh token**
	t.Run("空的 refresh token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.RefreshTokens(ctx, "")

		assert.Error(t, err)
		assert.Equal(t, "unauthorized request", err.Error())
	})
}

func TestUserUseCase_Logout(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	logger.SetNewNop()

	// **情境 1: 成功登出**
	t.Run("成功登出", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("ClearRefreshToken", ctx, userID).Return(nil).Once()
		mockSession.On("Del", ctx, userID.Hex()).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		err := uc.Logout(ctx, userID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockSession.AssertExpectations(t)
	})

	// **情境 2: 清除 refresh token 失敗**
	t.Run("清除 refresh token 失敗", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("ClearRefreshToken", ctx, userID).Return(errors.New("db error")).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		err := uc.Logout(ctx, userID)

		assert.Error(t, err)
		mockSession.AssertNotCalled(t, "Del")
	})

	// **情境 3: Redis 刪除失敗不影響登出**
	t.Run("Redis 刪除失敗不影響登出", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("ClearRefreshToken", ctx, userID).Return(nil).Once()
		mockSession.On("Del", ctx, userID.Hex()).Return(errors.New("redis error")).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		err := uc.Logout(ctx, userID)

		assert.NoError(t, err)
		mockSession.AssertExpectations(t)
	})
}

func TestUserUseCase_ChangePassword(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	oldPassword := "old-pw"
	hashedOld, _ := encrypt.HashPassword(oldPassword)

	logger.SetNewNop()

	// **情境 1: 成功變更密碼**
	t.Run("成功變更密碼", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		user := &domain.User{ID: userID, Password: hashedOld}
		mockRepo.On("FindOne", ctx, &domain.UserQuery{ID: &userID}).Return(user, nil).Once()
		mockRepo.On("UpdatePassword", ctx, userID, mock.Anything).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		err := uc.ChangePassword(ctx, userID, oldPassword, "new-pw")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	// **情境 2: 舊密碼錯誤**
	t.Run("舊密碼錯誤", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		user := &domain.User{ID: userID, Password: hashedOld}
		mockRepo.On("FindOne", ctx, &domain.UserQuery{ID: &userID}).Return(user, nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		err := uc.ChangePassword(ctx, userID, "wrong-pw", "new-pw")

		assert.Error(t, err)
		assert.Equal(t, "invalid old password", err.Error())
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		mockRepo.AssertNotCalled(t, "UpdatePassword")
	})
}

func TestUserUseCase_UpdateAccount(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	logger.SetNewNop()

	// **情境 1: 成功更新**
	t.Run("成功更新", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		fullName := "Alice Wang"
		updated := &domain.User{ID: userID, FullName: fullName}
		mockRepo.On("UpdateAccount", ctx, userID, &domain.AccountUpdate{FullName: &fullName}).
			Return(updated, nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		user, err := uc.UpdateAccount(ctx, userID, fullName, "")

		assert.NoError(t, err)
		assert.Equal(t, fullName, user.FullName)
		mockRepo.AssertExpectations(t)
	})

	// **情境 2: 全部欄位為空**
	t.Run("全部欄位為空", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.UpdateAccount(ctx, userID, "  ", "")

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "UpdateAccount")
	})
}

func TestUserUseCase_GetChannelProfile(t *testing.T) {
	ctx := context.Background()
	viewerID := primitive.NewObjectID()

	logger.SetNewNop()

	// **情境 1: 找到頻道**
	t.Run("找到頻道", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		profile := &domain.ChannelProfile{Username: "alice", SubscribersCount: 3, IsSubscribed: true}
		mockRepo.On("GetChannelProfile", ctx, "alice", viewerID).Return(profile, nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		got, err := uc.GetChannelProfile(ctx, "  Alice ", viewerID)

		assert.NoError(t, err)
		assert.Equal(t, profile, got)
		mockRepo.AssertExpectations(t)
	})

	// **情境 2: 頻道不存在**
	t.Run("頻道不存在", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("GetChannelProfile", ctx, "ghost", viewerID).
			Return(nil, mongo.ErrNoDocuments).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		_, err := uc.GetChannelProfile(ctx, "ghost", viewerID)

		assert.Error(t, err)
		var apiErr *apierr.APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

func TestUserUseCase_WatchHistory(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	logger.SetNewNop()

	// **情境 1: 空的觀看紀錄回傳空 slice**
	t.Run("空的觀看紀錄", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		mockRepo.On("GetWatchHistory", ctx, userID).Return(nil, nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		entries, err := uc.GetWatchHistory(ctx, userID)

		assert.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	// **情境 2: 無效的 video id**
	t.Run("無效的 video id", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		err := uc.AddWatchHistory(ctx, userID, "not-an-object-id")

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "AddWatchHistory")
	})

	// **情境 3: 成功加入觀看紀錄**
	t.Run("成功加入觀看紀錄", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMedia := new(MockMediaStore)
		mockSession := new(MockSessionRepository)

		videoID := primitive.NewObjectID()
		mockRepo.On("AddWatchHistory", ctx, userID, videoID).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockMedia, mockSession)
		err := uc.AddWatchHistory(ctx, userID, videoID.Hex())

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
