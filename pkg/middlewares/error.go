package middlewares

import (
	"errors"

	"video_sharing_service/pkg/apierr"
	"video_sharing_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler 把所有 handler 丟出的錯誤轉成統一的失敗封套
// 掛在 fiber.Config.ErrorHandler，沒有錯誤能未格式化逃出
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *apierr.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(apiErr.Envelope())
	}

	// fiber 自己的錯誤（404 route、body limit 等）
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		e := apierr.APIError{StatusCode: fiberErr.Code, Message: fiberErr.Message}
		return c.Status(fiberErr.Code).JSON(e.Envelope())
	}

	if logger.Log != nil {
		logger.Log.Errorf("unhandled error:", err)
	}
	e := apierr.APIError{StatusCode: fiber.StatusInternalServerError, Message: "something went wrong"}
	return c.Status(fiber.StatusInternalServerError).JSON(e.Envelope())
}
