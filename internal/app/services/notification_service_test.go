package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

type fakeMailSender struct {
	mu   sync.Mutex
	sent []string // recipient emails
	err  error
}

func (f *fakeMailSender) SendMatchApprovedEmail(toEmail, toName, studentName, volunteerName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, toEmail)
	return f.err
}

type fakeAuditStore struct {
	mu     sync.Mutex
	logs   []*models.NotificationLog
	signal chan struct{}
}

func (f *fakeAuditStore) Create(ctx context.Context, log *models.NotificationLog) error {
	f.mu.Lock()
	f.logs = append(f.logs, log)
	f.mu.Unlock()
	f.signal <- struct{}{}
	return nil
}

func waitForAuditRows(t *testing.T, signal chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-signal:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for audit row %d of %d", i+1, n)
		}
	}
}

func approvedMatchForNotification() *models.Match {
	student := newStudent("s1", "Haifa", "Russian")
	student.Email = "student@example.com"
	volunteer := newVolunteer("v1", "Haifa", "Russian", 3, 1)
	volunteer.Email = "volunteer@example.com"

	match := pendingMatch("m1", student, volunteer)
	match.Status = models.MatchStatusApproved
	return match
}

func TestMatchApprovedNotifiesBothParties(t *testing.T) {
	mail := &fakeMailSender{}
	audit := &fakeAuditStore{signal: make(chan struct{}, 2)}
	svc := NewNotificationService(mail, audit, zerolog.Nop())

	svc.MatchApproved(approvedMatchForNotification())
	waitForAuditRows(t, audit.signal, 2)

	mail.mu.Lock()
	defer mail.mu.Unlock()
	assert.ElementsMatch(t, []string{"student@example.com", "volunteer@example.com"}, mail.sent)

	audit.mu.Lock()
	defer audit.mu.Unlock()
	require.Len(t, audit.logs, 2)
	for _, log := range audit.logs {
		assert.Equal(t, "m1", log.MatchID)
		assert.Equal(t, models.NotificationChannelEmail, log.Channel)
		assert.Equal(t, models.NotificationStatusSent, log.Status)
		assert.Nil(t, log.Error)
	}
}

func TestMatchApprovedRecordsFailedDispatch(t *testing.T) {
	mail := &fakeMailSender{err: errors.New("smtp unreachable")}
	audit := &fakeAuditStore{signal: make(chan struct{}, 2)}
	svc := NewNotificationService(mail, audit, zerolog.Nop())

	svc.MatchApproved(approvedMatchForNotification())
	waitForAuditRows(t, audit.signal, 2)

	audit.mu.Lock()
	defer audit.mu.Unlock()
	require.Len(t, audit.logs, 2)
	for _, log := range audit.logs {
		assert.Equal(t, models.NotificationStatusFailed, log.Status)
		require.NotNil(t, log.Error)
		assert.Contains(t, *log.Error, "smtp unreachable")
	}
}

func TestMatchApprovedIgnoresIncompleteMatches(t *testing.T) {
	mail := &fakeMailSender{}
	audit := &fakeAuditStore{signal: make(chan struct{}, 2)}
	svc := NewNotificationService(mail, audit, zerolog.Nop())

	svc.MatchApproved(nil)
	match := approvedMatchForNotification()
	match.Student = nil
	svc.MatchApproved(match)

	// Nothing dispatched, nothing audited.
	select {
	case <-audit.signal:
		t.Fatal("unexpected audit row for incomplete match")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Empty(t, mail.sent)
}
