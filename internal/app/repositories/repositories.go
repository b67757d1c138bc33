package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository           *AdminRepository
	StudentRepository         *StudentRepository
	VolunteerRepository       *VolunteerRepository
	MatchRepository           *MatchRepository
	NotificationLogRepository *NotificationLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminRepository:           NewAdminRepository(db),
		StudentRepository:         NewStudentRepository(db),
		VolunteerRepository:       NewVolunteerRepository(db),
		MatchRepository:           NewMatchRepository(db),
		NotificationLogRepository: NewNotificationLogRepository(db),
	}
}
