package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	subdomain "video_sharing_service/internal/subscription/domain"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockSubscriptionUseCase Mock SubscriptionUseCase
type MockSubscriptionUseCase struct {
	mock.Mock
}

// Toggle mock toggle
func (m *MockSubscriptionUseCase) Toggle(ctx context.Context, subscriberID primitive.ObjectID, channelID string) (*subdomain.ToggleResult, error) {
	args := m.Called(ctx, subscriberID, channelID)
	if args.Get(0) != nil {
		return args.Get(0).(*subdomain.ToggleResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListSubscribers mock list subscribers
func (m *MockSubscriptionUseCase) ListSubscribers(ctx context.Context, channelID string) ([]subdomain.SubscriberEntry, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) != nil {
		return args.Get(0).([]subdomain.SubscriberEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListSubscribedChannels mock list subscribed channels
func (m *MockSubscriptionUseCase) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]subdomain.ChannelEntry, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) != nil {
		return args.Get(0).([]subdomain.ChannelEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func newSubscriptionTestApp(usecase *MockSubscriptionUseCase, userID primitive.ObjectID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	handler := NewSubscriptionHandler(usecase)

	// 測試用的假登入 middleware
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middlewares.LocalsUserID, userID.Hex())
		return c.Next()
	})
	app.Post("/api/v1/subscription/:channelId", handler.Toggle)
	return app
}

func TestSubscriptionHandler_Toggle(t *testing.T) {
	logger.SetNewNop()

	userID := primitive.NewObjectID()
	channelID := primitive.NewObjectID().Hex()

	// **情境 1: 訂閱成功回 201**
	t.Run("訂閱回 201", func(t *testing.T) {
		mockUC := new(MockSubscriptionUseCase)
		mockUC.On("Toggle", mock.Anything, userID, channelID).
			Return(&subdomain.ToggleResult{Subscribed: true}, nil).Once()

		app := newSubscriptionTestApp(mockUC, userID)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/subscription/"+channelID, nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "subscribed successfully", body["message"])
		mockUC.AssertExpectations(t)
	})

	// **情境 2: 退訂回 200**
	t.Run("退訂回 200", func(t *testing.T) {
		mockUC := new(MockSubscriptionUseCase)
		mockUC.On("Toggle", mock.Anything, userID, channelID).
			Return(&subdomain.ToggleResult{Subscribed: false}, nil).Once()

		app := newSubscriptionTestApp(mockUC, userID)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/subscription/"+channelID, nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "unsubscribed successfully", body["message"])
		mockUC.AssertExpectations(t)
	})
}
