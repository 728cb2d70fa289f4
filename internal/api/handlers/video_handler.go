package handlers

import (
	"strconv"
	"strings"

	videoapp "video_sharing_service/internal/video/app"
	videodomain "video_sharing_service/internal/video/domain"
	"video_sharing_service/pkg/apierr"
	"video_sharing_service/pkg/apires"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoHandler 處理影片相關的 HTTP 請求
type VideoHandler struct {
	Usecase videoapp.VideoUseCase
}

// NewVideoHandler 建立新的 VideoHandler
func NewVideoHandler(usecase videoapp.VideoUseCase) *VideoHandler {
	return &VideoHandler{
		Usecase: usecase,
	}
}

// Publish 發佈影片
// @Summary 發佈影片
// @Description multipart 上傳影片與縮圖，ffprobe 讀取長度後建立 document
// @Tags Videos
// @Accept mpfd
// @Produce json
// @Success 201 {object} apires.Response "發佈成功"
// @Failure 400 {object} apierr.FailureBody "缺少檔案或讀不到長度"
// @Router /api/v1/video [post]
func (h *VideoHandler) Publish(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	videoPath, err := saveUpload(c, "videoFile")
	if err != nil {
		return apierr.Internal("failed to store uploaded video")
	}
	thumbnailPath, err := saveUpload(c, "thumbnail")
	if err != nil {
		return apierr.Internal("failed to store uploaded thumbnail")
	}
	defer removeLocal(videoPath, thumbnailPath)

	video, err := h.Usecase.Publish(c.UserContext(), userID, &videodomain.PublishVideoReq{
		Title:              c.FormValue("title"),
		Description:        c.FormValue("description"),
		VideoLocalPath:     videoPath,
		ThumbnailLocalPath: thumbnailPath,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(apires.New(fiber.StatusCreated, video, "video published successfully"))
}

// List 影片列表
// @Summary 查詢已上架影片
// @Description 支援 query/sortBy/sortType/page/limit，只回傳已上架影片
// @Tags Videos
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/video [get]
func (h *VideoHandler) List(c *fiber.Ctx) error {
	q := &videodomain.VideoQuery{
		Title:         c.Query("query"),
		PublishedOnly: true,
		SortBy:        c.Query("sortBy"),
		SortType:      c.Query("sortType"),
		Page:          queryInt64(c, "page", 1),
		Limit:         queryInt64(c, "limit", 10),
	}

	if userID := c.Query("userId"); userID != "" {
		owner, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return apierr.Validation("invalid user ID")
		}
		q.Owner = &owner
	}

	page, err := h.Usecase.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, page, "videos fetched successfully"))
}

// MyVideos 自己的影片，含未上架
// @Summary 查詢自己的影片（含未上架）
// @Tags Videos
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/video/my-videos [get]
func (h *VideoHandler) MyVideos(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	q := &videodomain.VideoQuery{
		Title:    c.Query("query"),
		Owner:    &userID,
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		Page:     queryInt64(c, "page", 1),
		Limit:    queryInt64(c, "limit", 10),
	}

	page, err := h.Usecase.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, page, "videos fetched successfully"))
}

// Get 取單支影片
// @Summary 以 id 取得影片
// @Tags Videos
// @Produce json
// @Success 200 {object} apires.Response
// @Failure 404 {object} apierr.FailureBody "影片不存在"
// @Router /api/v1/video/{videoId} [get]
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	video, err := h.Usecase.GetByID(c.UserContext(), c.Params("videoId"))
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, video, "video fetched successfully"))
}

// Update 更新影片
// @Summary 更新標題、描述或縮圖（限擁有者）
// @Tags Videos
// @Accept mpfd
// @Produce json
// @Success 200 {object} apires.Response
// @Failure 403 {object} apierr.FailureBody "非擁有者"
// @Router /api/v1/video/{videoId} [patch]
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	thumbnailPath, err := saveUpload(c, "thumbnail")
	if err != nil {
		return apierr.Internal("failed to store uploaded thumbnail")
	}
	defer removeLocal(thumbnailPath)

	req := &videodomain.UpdateVideoReq{ThumbnailLocalPath: thumbnailPath}
	if title := strings.TrimSpace(c.FormValue("title")); title != "" {
		req.Title = &title
	}
	if description := c.FormValue("description"); description != "" {
		req.Description = &description
	}

	video, err := h.Usecase.Update(c.UserContext(), c.Params("videoId"), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, video, "video updated successfully"))
}

// Delete 刪除影片
// @Summary 刪除影片（限擁有者）
// @Tags Videos
// @Produce json
// @Success 200 {object} apires.Response
// @Failure 403 {object} apierr.FailureBody "非擁有者"
// @Router /api/v1/video/{videoId} [delete]
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.Usecase.Delete(c.UserContext(), c.Params("videoId"), userID); err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, nil, "video deleted successfully"))
}

// TogglePublish 切換上架狀態
// @Summary 切換上架狀態（限擁有者）
// @Tags Videos
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/video/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	video, err := h.Usecase.TogglePublish(c.UserContext(), c.Params("videoId"), userID)
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, video, "publish status toggled"))
}

// IncrementViews 播放數加一
// @Summary 播放數加一並發播放事件
// @Tags Videos
// @Produce json
// @Success 200 {object} apires.Response
// @Router /api/v1/video/{videoId}/views [patch]
func (h *VideoHandler) IncrementViews(c *fiber.Ctx) error {
	video, err := h.Usecase.IncrementViews(c.UserContext(), c.Params("videoId"))
	if err != nil {
		return err
	}
	return c.JSON(apires.New(fiber.StatusOK, video, "views updated"))
}

func queryInt64(c *fiber.Ctx, key string, def int64) int64 {
	val := c.Query(key)
	if val == "" {
		return def
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return n
}
