package handlers

import (
	commentapp "video_sharing_service/internal/comment/app"
	"video_sharing_service/pkg/apierr"
	"video_sharing_service/pkg/apires"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler 處理留言相關的 HTTP 請求
type CommentHandler struct {
	Usecase commentapp.CommentUseCase
}

// NewCommentHandler 建立新的 CommentHandler
func NewCommentHandler(usecase commentapp.CommentUseCase) *CommentHandler {
	return &CommentHandler{
		Usecase: usecase,
	}
}

// List 影片留言列表
// @Summary 取某支影片的留言（新的在前）
// @Tags Comments
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/comments/{videoId} [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	page, err := h.Usecase.ListByVideo(c.UserContext(), c.Params("videoId"),
		queryInt64(c, "page", 1), queryInt64(c, "limit", 10))
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, page, "comments fetched successfully"))
}

// Add 新增留言
// @Summary 對影片留言
// @Tags Comments
// @Accept json
// @Produce json
// @Success 201 {object} apires.Response
// @Failure 404 {object} apierr.FailureBody "影片不存在"
// @Router /api/v1/comments/{videoId} [post]
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apierr.Validation("invalid request body")
	}

	comment, err := h.Usecase.Add(c.UserContext(), c.Params("videoId"), userID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).
		JSON(apires.New(fiber.StatusCreated, comment, "comment added successfully"))
}

// Update 更新留言
// @Summary 更新留言內容（限留言者本人）
// @Tags Comments
// @Accept json
// @Produce json
// @Success 200 {object} apires.Response
// @Failure 403 {object} apierr.FailureBody "非留言者"
// @Router /api/v1/comments/{commentId} [patch]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apierr.Validation("invalid request body")
	}

	comment, err := h.Usecase.Update(c.UserContext(), c.Params("commentId"), userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, comment, "comment updated successfully"))
}

// Delete 刪除留言
// @Summary 刪除留言（限留言者本人）
// @Tags Comments
// @Produce json
// @Success 200 {object} apires.Response
// @Failure 403 {object} apierr.FailureBody "非留言者"
// @Router /api/v1/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.Usecase.Delete(c.UserContext(), c.Params("commentId"), userID); err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, nil, "comment deleted successfully"))
}
