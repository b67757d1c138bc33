package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

// MatchMailSender delivers the approval notification email
type MatchMailSender interface {
	SendMatchApprovedEmail(toEmail, toName, studentName, volunteerName string) error
}

// NotificationAuditStore records one row per dispatch attempt
type NotificationAuditStore interface {
	Create(ctx context.Context, log *models.NotificationLog) error
}

// NotificationService reacts to committed approvals: it emails both parties
// and writes an audit row per attempt. It runs after the approval transaction
// and its failures never affect the approval outcome.
type NotificationService struct {
	mail   MatchMailSender
	audit  NotificationAuditStore
	logger zerolog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(mail MatchMailSender, audit NotificationAuditStore, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		mail:   mail,
		audit:  audit,
		logger: logger,
	}
}

// MatchApproved dispatches asynchronously; the approval request does not wait
func (s *NotificationService) MatchApproved(match *models.Match) {
	if match == nil || match.Student == nil || match.Volunteer == nil {
		return
	}

	student := *match.Student
	volunteer := *match.Volunteer
	matchID := match.ID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.dispatch(ctx, matchID, student.Email, student.FullName, student.FullName, volunteer.FullName)
		s.dispatch(ctx, matchID, volunteer.Email, volunteer.FullName, student.FullName, volunteer.FullName)
	}()
}

func (s *NotificationService) dispatch(ctx context.Context, matchID, toEmail, toName, studentName, volunteerName string) {
	sendErr := s.mail.SendMatchApprovedEmail(toEmail, toName, studentName, volunteerName)

	log := &models.NotificationLog{
		ID:        uuid.New().String(),
		MatchID:   matchID,
		Channel:   models.NotificationChannelEmail,
		Recipient: toEmail,
		Status:    models.NotificationStatusSent,
	}
	if sendErr != nil {
		errText := sendErr.Error()
		log.Status = models.NotificationStatusFailed
		log.Error = &errText
		s.logger.Warn().Err(sendErr).
			Str("matchId", matchID).
			Str("recipient", toEmail).
			Msg("Approval notification failed")
	}

	if err := s.audit.Create(ctx, log); err != nil {
		s.logger.Error().Err(err).
			Str("matchId", matchID).
			Str("recipient", toEmail).
			Msg("Failed to write notification audit row")
	}
}
