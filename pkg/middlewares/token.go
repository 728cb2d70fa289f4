package middlewares

import (
	"context"
	"strings"

	"video_sharing_service/pkg/apierr"
	t_token "video_sharing_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	// CookieAccessToken access token cookie name
	CookieAccessToken = "accessToken"

	// CookieRefreshToken refresh token cookie name
	CookieRefreshToken = "refreshToken"

	// LocalsUserID get user id from token, set c.Locals name
	LocalsUserID = "userID"
	// LocalsUser resolved user document, set c.Locals name
	LocalsUser = "currentUser"
)

// UserLoader resolves the user a verified token refers to
type UserLoader func(ctx context.Context, userID string) (interface{}, error)

// JWTAuth validates the access JWT from cookie or Authorization header,
// loads the referenced user and injects it into the request context
func JWTAuth(loadUser UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieAccessToken)

		// 如果 Cookie 中沒有 token，則嘗試從 Authorization header 中獲取
		if tokenStr == "" {
			auth := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(auth, "Bearer ") {
				tokenStr = strings.TrimSpace(auth[len("Bearer "):])
			}
		}

		// 如果仍然沒有 token，則返回未授權錯誤
		if tokenStr == "" {
			return apierr.Auth("unauthorized request")
		}

		claims, err := t_token.ParseAccessTokenFunc(tokenStr)
		if err != nil {
			return apierr.Auth("invalid access token")
		}

		user, err := loadUser(c.UserContext(), claims.UserID)
		if err != nil {
			return apierr.Auth("invalid access token")
		}

		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsUser, user)

		return c.Next()
	}
}
