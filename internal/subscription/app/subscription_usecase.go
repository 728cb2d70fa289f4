package app

import (
	"context"

	"video_sharing_service/internal/subscription/domain"
	"video_sharing_service/internal/subscription/repository"
	userdomain "video_sharing_service/internal/user/domain"
	userrepo "video_sharing_service/internal/user/repository"
	"video_sharing_service/pkg/apierr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubscriptionUseCase 訂閱相關的應用服務
type SubscriptionUseCase interface {
	Toggle(ctx context.Context, subscriberID primitive.ObjectID, channelID string) (*domain.ToggleResult, error)
	ListSubscribers(ctx context.Context, channelID string) ([]domain.SubscriberEntry, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]domain.ChannelEntry, error)
}

type subscriptionUseCase struct {
	subRepo  repository.SubscriptionRepository
	userRepo userrepo.UserRepository
}

// NewSubscriptionUseCase 建立一個新的 SubscriptionUseCase
func NewSubscriptionUseCase(subRepo repository.SubscriptionRepository, userRepo userrepo.UserRepository) SubscriptionUseCase {
	return &subscriptionUseCase{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// Toggle 已訂閱就退訂，沒訂閱就訂閱，不能訂閱自己
func (u *subscriptionUseCase) Toggle(ctx context.Context, subscriberID primitive.ObjectID, channelID string) (*domain.ToggleResult, error) {
	channel, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return nil, apierr.Validation("invalid channel ID")
	}
	if channel == subscriberID {
		return nil, apierr.Validation("you cannot subscribe to your own channel")
	}

	if _, err := u.userRepo.FindOne(ctx, &userdomain.UserQuery{ID: &channel}); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apierr.NotFound("channel does not exist")
		}
		return nil, apierr.Internal("failed to fetch channel")
	}

	// 先試著退訂，沒刪到東西代表還沒訂閱
	deleted, err := u.subRepo.DeleteByPair(ctx, subscriberID, channel)
	if err != nil {
		return nil, apierr.Internal("failed to toggle subscription")
	}
	if deleted {
		return &domain.ToggleResult{Subscribed: false}, nil
	}

	if err := u.subRepo.UpsertPair(ctx, subscriberID, channel); err != nil {
		return nil, apierr.Internal("failed to toggle subscription")
	}
	return &domain.ToggleResult{Subscribed: true}, nil
}

func (u *subscriptionUseCase) ListSubscribers(ctx context.Context, channelID string) ([]domain.SubscriberEntry, error) {
	channel, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return nil, apierr.Validation("invalid channel ID")
	}

	entries, err := u.subRepo.ListSubscribers(ctx, channel)
	if err != nil {
		return nil, apierr.Internal("failed to fetch subscribers")
	}
	return entries, nil
}

func (u *subscriptionUseCase) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]domain.ChannelEntry, error) {
	subscriber, err := primitive.ObjectIDFromHex(subscriberID)
	if err != nil {
		return nil, apierr.Validation("invalid subscriber ID")
	}

	entries, err := u.subRepo.ListSubscribedChannels(ctx, subscriber)
	if err != nil {
		return nil, apierr.Internal("failed to fetch subscribed channels")
	}
	return entries, nil
}
