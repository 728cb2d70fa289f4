package handlers

import (
	subapp "video_sharing_service/internal/subscription/app"
	"video_sharing_service/pkg/apires"

	"github.com/gofiber/fiber/v2"
)

// SubscriptionHandler 處理訂閱相關的 HTTP 請求
type SubscriptionHandler struct {
	Usecase subapp.SubscriptionUseCase
}

// NewSubscriptionHandler 建立新的 SubscriptionHandler
func NewSubscriptionHandler(usecase subapp.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{
		Usecase: usecase,
	}
}

// Toggle 切換訂閱
// @Summary 訂閱或退訂頻道
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} apires.Response "退訂"
// @Success 201 {object} apires.Response "訂閱"
// @Failure 400 {object} apierr.FailureBody "不能訂閱自己"
// @Router /api/v1/subscription/{channelId} [post]
func (h *SubscriptionHandler) Toggle(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	result, err := h.Usecase.Toggle(c.UserContext(), userID, c.Params("channelId"))
	if err != nil {
		return err
	}

	// 訂閱建立新 document 回 201，退訂回 200
	status := fiber.StatusOK
	message := "unsubscribed successfully"
	if result.Subscribed {
		status = fiber.StatusCreated
		message = "subscribed successfully"
	}
	return c.Status(status).JSON(apires.New(status, result, message))
}

// Subscribers 頻道訂閱者清單
// @Summary 取頻道的訂閱者
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/subscription/channel/{channelId} [get]
func (h *SubscriptionHandler) Subscribers(c *fiber.Ctx) error {
	entries, err := h.Usecase.ListSubscribers(c.UserContext(), c.Params("channelId"))
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, entries, "subscribers fetched successfully"))
}

// SubscribedChannels 使用者訂閱的頻道清單
// @Summary 取某使用者訂閱的頻道
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/subscription/user/{subscriberId} [get]
func (h *SubscriptionHandler) SubscribedChannels(c *fiber.Ctx) error {
	entries, err := h.Usecase.ListSubscribedChannels(c.UserContext(), c.Params("subscriberId"))
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, entries, "subscribed channels fetched successfully"))
}
