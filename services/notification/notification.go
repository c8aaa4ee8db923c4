package notification

import (
	"context"
	"fmt"

	coachRepo "coachflow/database/repository/coach"
	"coachflow/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes to coaches.
type NotificationService interface {
	NotifyNewSuggestions(ctx context.Context, coachID string, count int) error
}

// FCMNotificationService is the production implementation.
type FCMNotificationService struct {
	CoachRepo coachRepo.CoachRepository
	Client    *messaging.Client
}

func NewFCMNotificationService(coaches coachRepo.CoachRepository) *FCMNotificationService {
	return &FCMNotificationService{
		CoachRepo: coaches,
		Client:    utils.FCMClient,
	}
}

// NotifyNewSuggestions pushes a summary message to every registered device
// of the coach. Delivery is best effort; a coach without tokens or a
// disabled FCM client is not an error.
func (s *FCMNotificationService) NotifyNewSuggestions(ctx context.Context, coachID string, count int) error {
	if s.Client == nil {
		return nil
	}

	coach, err := s.CoachRepo.GetByID(coachID)
	if err != nil {
		return fmt.Errorf("notification: failed to resolve coach %s: %w", coachID, err)
	}
	if len(coach.DeviceTokens) == 0 {
		return nil
	}

	logger := utils.GetLogger()
	body := fmt.Sprintf("You have %d new schedule suggestions ready for review", count)
	if count == 1 {
		body = "You have a new schedule suggestion ready for review"
	}

	for _, token := range coach.DeviceTokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "Schedule optimization",
				Body:  body,
			},
			Data: map[string]string{
				"type":  "schedule_suggestions",
				"count": fmt.Sprintf("%d", count),
			},
		}
		if _, err := s.Client.Send(ctx, msg); err != nil {
			logger.Warn("notification: failed to send push",
				zap.String("coachID", coachID), zap.Error(err))
		}
	}
	return nil
}
