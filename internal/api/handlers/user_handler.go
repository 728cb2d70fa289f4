package handlers

import (
	"os"
	"time"

	userapp "video_sharing_service/internal/user/app"
	userdomain "video_sharing_service/internal/user/domain"
	"video_sharing_service/pkg/apierr"
	"video_sharing_service/pkg/apires"
	"video_sharing_service/pkg/middlewares"
	"video_sharing_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler 處理使用者相關的 HTTP 請求
type UserHandler struct {
	Usecase userapp.UserUseCase
}

// NewUserHandler 建立新的 UserHandler
func NewUserHandler(usecase userapp.UserUseCase) *UserHandler {
	return &UserHandler{
		Usecase: usecase,
	}
}

// currentUserID 解析 auth middleware 放進 Locals 的 user id
func currentUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	idStr, ok := c.Locals(middlewares.LocalsUserID).(string)
	if !ok {
		return primitive.NilObjectID, apierr.Auth("unauthorized request")
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, apierr.Auth("unauthorized request")
	}
	return id, nil
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieAccessToken,
		Value:    accessToken,
		Expires:  time.Now().Add(token.AccessExpiration()),
		HTTPOnly: true,
		Secure:   true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieRefreshToken,
		Value:    refreshToken,
		Expires:  time.Now().Add(token.RefreshExpiration()),
		HTTPOnly: true,
		Secure:   true,
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: middlewares.CookieAccessToken, Value: "", Expires: expired, HTTPOnly: true, Secure: true})
	c.Cookie(&fiber.Cookie{Name: middlewares.CookieRefreshToken, Value: "", Expires: expired, HTTPOnly: true, Secure: true})
}

// Register 註冊新使用者
// @Summary 註冊新使用者
// @Description multipart 表單註冊，avatar 必填，coverImage 選填
// @Tags Users
// @Accept mpfd
// @Produce json
// @Success 201 {object} apires.Response "註冊成功"
// @Failure 400 {object} apierr.FailureBody "請求錯誤"
// @Failure 409 {object} apierr.FailureBody "使用者已存在"
// @Router /api/v1/users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	avatarPath, err := saveUpload(c, "avatar")
	if err != nil {
		return apierr.Internal("failed to store uploaded avatar")
	}
	coverPath, err := saveUpload(c, "coverImage")
	if err != nil {
		return apierr.Internal("failed to store uploaded cover image")
	}
	defer removeLocal(avatarPath, coverPath)

	user, err := h.Usecase.Register(c.UserContext(), &userdomain.RegisterReq{
		Username:        c.FormValue("username"),
		Email:           c.FormValue("email"),
		FullName:        c.FormValue("fullName"),
		Password:        c.FormValue("password"),
		AvatarLocalPath: avatarPath,
		CoverLocalPath:  coverPath,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(apires.New(fiber.StatusCreated, user, "user registered successfully"))
}

// Login 登入
// @Summary 使用者登入
// @Description 以 username 或 email 搭配密碼登入，簽發 access/refresh token
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} apires.Response "登入成功"
// @Failure 401 {object} apierr.FailureBody "帳密錯誤"
// @Failure 404 {object} apierr.FailureBody "使用者不存在"
// @Router /api/v1/users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req userdomain.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return apierr.Validation("invalid request body")
	}

	result, err := h.Usecase.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}

	setAuthCookies(c, result.AccessToken, result.RefreshToken)
	return c.JSON(apires.New(fiber.StatusOK, fiber.Map{
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}, "user logged in successfully"))
}

// RefreshToken 輪替 token
// @Summary 輪替 access/refresh token
// @Description refresh token 從 cookie 或 body 取得，用過一次即失效
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} apires.Response "輪替成功"
// @Failure 401 {object} apierr.FailureBody "token 無效或已被使用"
// @Router /api/v1/users/refresh-token [post]
func (h *UserHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies(middlewares.CookieRefreshToken)
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}

	result, err := h.Usecase.RefreshTokens(c.UserContext(), refreshToken)
	if err != nil {
		return err
	}

	setAuthCookies(c, result.AccessToken, result.RefreshToken)
	return c.JSON(apires.New(fiber.StatusOK, fiber.Map{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}, "access token refreshed"))
}

// Logout 登出
// @Summary 使用者登出
// @Tags Users
// @Produce json
// @Success 200 {object} apires.Response "登出成功"
// @Router /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.Usecase.Logout(c.UserContext(), userID); err != nil {
		return err
	}

	clearAuthCookies(c)
	return c.JSON(apires.New(fiber.StatusOK, nil, "user logged out"))
}

// ChangePassword 變更密碼
// @Summary 變更密碼
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} apires.Response "變更成功"
// @Failure 400 {object} apierr.FailureBody "舊密碼錯誤"
// @Router /api/v1/users/change-password [post]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apierr.Validation("invalid request body")
	}

	if err := h.Usecase.ChangePassword(c.UserContext(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, nil, "password changed successfully"))
}

// CurrentUser 取得目前登入的使用者
// @Summary 取得目前登入的使用者
// @Tags Users
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/users/current [get]
func (h *UserHandler) CurrentUser(c *fiber.Ctx) error {
	user, ok := c.Locals(middlewares.LocalsUser).(*userdomain.User)
	if !ok {
		return apierr.Auth("unauthorized request")
	}
	return c.JSON(apires.New(fiber.StatusOK, user, "current user fetched"))
}

// UpdateAccount 更新帳號資訊
// @Summary 更新 fullName/email
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/users/update-account [patch]
func (h *UserHandler) UpdateAccount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apierr.Validation("invalid request body")
	}

	user, err := h.Usecase.UpdateAccount(c.UserContext(), userID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, user, "account updated successfully"))
}

// UpdateAvatar 更新頭像
// @Summary 更新頭像
// @Tags Users
// @Accept mpfd
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	localPath, err := saveUpload(c, "avatar")
	if err != nil {
		return apierr.Internal("failed to store uploaded avatar")
	}
	defer removeLocal(localPath)

	user, err := h.Usecase.UpdateAvatar(c.UserContext(), userID, localPath)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, user, "avatar updated successfully"))
}

// UpdateCover 更新封面
// @Summary 更新封面圖
// @Tags Users
// @Accept mpfd
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/users/cover [patch]
func (h *UserHandler) UpdateCover(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	localPath, err := saveUpload(c, "coverImage")
	if err != nil {
		return apierr.Internal("failed to store uploaded cover image")
	}
	defer removeLocal(localPath)

	user, err := h.Usecase.UpdateCover(c.UserContext(), userID, localPath)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, user, "cover image updated successfully"))
}

// ChannelProfile 取頻道檔案
// @Summary 以 username 取得頻道檔案與訂閱統計
// @Tags Users
// @Produce json
// @Success 200 {object} apires.Response
// @Failure 404 {object} apierr.FailureBody "頻道不存在"
// @Router /api/v1/users/channel/{username} [get]
func (h *UserHandler) ChannelProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.Usecase.GetChannelProfile(c.UserContext(), c.Params("username"), userID)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, profile, "channel profile fetched"))
}

// WatchHistory 取觀看紀錄
// @Summary 取觀看紀錄
// @Tags Users
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/users/watch-history [get]
func (h *UserHandler) WatchHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.Usecase.GetWatchHistory(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, entries, "watch history fetched"))
}

// AddWatchHistory 加入觀看紀錄
// @Summary 把影片加進觀看紀錄
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/users/watch-history [post]
func (h *UserHandler) AddWatchHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		VideoID string `json:"videoId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apierr.Validation("invalid request body")
	}

	if err := h.Usecase.AddWatchHistory(c.UserContext(), userID, req.VideoID); err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, nil, "watch history updated"))
}

// removeLocal 清掉暫存檔，空字串直接略過
func removeLocal(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
