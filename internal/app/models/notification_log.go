package models

import "time"

// NotificationChannel identifies the delivery channel of a notification attempt
type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
)

// NotificationStatus records the outcome of a single dispatch attempt
type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// NotificationLog defines one audit row per notification attempt, based on the
// 'notification_logs' table. Written after an approval commits; failures here
// never affect the approval itself.
type NotificationLog struct {
	ID        string              `json:"id" db:"id"`
	MatchID   string              `json:"matchId" db:"match_id"`
	Channel   NotificationChannel `json:"channel" db:"channel"`
	Recipient string              `json:"recipient" db:"recipient"`
	Status    NotificationStatus  `json:"status" db:"status"`
	Error     *string             `json:"error,omitempty" db:"error"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
}
