package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

var ErrUnsupportedChannel = errors.New("unsupported notification channel")

// Supported delivery channels. Dispatch is a stub that records and logs the
// send; channel-specific payload formatting belongs to the provider
// integration, not here.
var notificationChannels = map[string]bool{
	"email":    true,
	"sms":      true,
	"whatsapp": true,
}

type NotificationService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewNotificationService(db *gorm.DB, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		db:  db,
		log: log.With().Str("component", "notification_service").Logger(),
	}
}

// Send persists a notification for the given target and marks it sent.
// studentID may be nil for test sends that target a raw address.
func (s *NotificationService) Send(adminID uuid.UUID, studentID *uuid.UUID, channel, target, message string) (*models.Notification, error) {
	if !notificationChannels[channel] {
		return nil, ErrUnsupportedChannel
	}

	n := &models.Notification{
		AdminID:   adminID,
		StudentID: studentID,
		Channel:   channel,
		Target:    target,
		Message:   message,
		Status:    "queued",
	}
	if err := s.db.Create(n).Error; err != nil {
		return nil, err
	}

	// Provider integration point: Twilio/SendGrid/etc. would be invoked
	// here. The portal only records the dispatch.
	now := time.Now()
	n.Status = "sent"
	n.SentAt = &now
	if err := s.db.Save(n).Error; err != nil {
		return nil, err
	}

	s.log.Info().
		Str("channel", channel).
		Str("notification_id", n.ID.String()).
		Msg("notification dispatched")
	return n, nil
}

// ResultsReadyMessage renders the standard "results published" message for
// an exam. Callers hand the string to Send with the student's channel.
func ResultsReadyMessage(examName string) string {
	return "Your results for " + examName + " have been published. Log in to the portal to view them."
}
