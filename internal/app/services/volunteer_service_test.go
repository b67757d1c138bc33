package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
	"github.com/kesher-org/kesher-backend/internal/pkg/geocode"
)

type fakeVolunteerCRUDStore struct {
	created     []*models.Volunteer
	deactivated []string
}

func (f *fakeVolunteerCRUDStore) Create(ctx context.Context, volunteer *models.Volunteer) error {
	f.created = append(f.created, volunteer)
	return nil
}

func (f *fakeVolunteerCRUDStore) GetByID(ctx context.Context, id string) (*models.Volunteer, error) {
	return nil, apperrors.ErrVolunteerNotFound
}

func (f *fakeVolunteerCRUDStore) List(ctx context.Context, active *bool, city, language string, offset uint64, limit int) ([]*models.Volunteer, int64, error) {
	return nil, 0, nil
}

func (f *fakeVolunteerCRUDStore) Deactivate(ctx context.Context, id string) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

func TestCreateVolunteerResetsCurrentMatches(t *testing.T) {
	store := &fakeVolunteerCRUDStore{}
	svc := NewVolunteerService(store, geocode.NewStaticGeocoder(), zerolog.Nop())

	volunteer := &models.Volunteer{
		FullName:          "Misha Katz",
		Email:             "misha@example.com",
		City:              "Tel Aviv",
		NativeLanguage:    "Russian",
		Capacity:          3,
		CurrentMatches:    5, // client-supplied value is ignored
		IsActive:          true,
		ScholarshipActive: true,
	}

	require.NoError(t, svc.CreateVolunteer(context.Background(), volunteer))

	assert.NotEmpty(t, volunteer.ID)
	assert.Zero(t, volunteer.CurrentMatches)
	require.NotNil(t, volunteer.Coordinates)
	assert.InDelta(t, 32.0853, volunteer.Coordinates.Latitude, 1e-4)
}

func TestCreateVolunteerRequiresPositiveCapacity(t *testing.T) {
	svc := NewVolunteerService(&fakeVolunteerCRUDStore{}, geocode.NewStaticGeocoder(), zerolog.Nop())

	volunteer := &models.Volunteer{
		FullName:       "Misha Katz",
		Email:          "misha@example.com",
		City:           "Tel Aviv",
		NativeLanguage: "Russian",
		Capacity:       0,
	}

	err := svc.CreateVolunteer(context.Background(), volunteer)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDeactivateVolunteer(t *testing.T) {
	store := &fakeVolunteerCRUDStore{}
	svc := NewVolunteerService(store, geocode.NewStaticGeocoder(), zerolog.Nop())

	require.NoError(t, svc.DeactivateVolunteer(context.Background(), "v1"))
	assert.Equal(t, []string{"v1"}, store.deactivated)

	err := svc.DeactivateVolunteer(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
