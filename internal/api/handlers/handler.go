package handlers

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"video_sharing_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check API status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "video sharing service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("video sharing service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	query, _ := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("debug mode is : %t", status))
}

// saveUpload 把 multipart 欄位存成暫存檔，回傳本地路徑
// 欄位不存在時回傳空字串，由 usecase 決定是否必填
func saveUpload(c *fiber.Ctx, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	localPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}
