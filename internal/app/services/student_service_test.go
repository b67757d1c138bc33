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

type fakeStudentCRUDStore struct {
	created []*models.Student
}

func (f *fakeStudentCRUDStore) Create(ctx context.Context, student *models.Student) error {
	f.created = append(f.created, student)
	return nil
}

func (f *fakeStudentCRUDStore) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentCRUDStore) List(ctx context.Context, matched *bool, offset uint64, limit int) ([]*models.Student, int64, error) {
	return nil, 0, nil
}

func TestCreateStudentGeocodesKnownCity(t *testing.T) {
	store := &fakeStudentCRUDStore{}
	svc := NewStudentService(store, geocode.NewStaticGeocoder(), zerolog.Nop())

	student := &models.Student{
		FullName:       "Dana Levi",
		Email:          "dana@example.com",
		City:           "Haifa",
		NativeLanguage: "Russian",
	}

	require.NoError(t, svc.CreateStudent(context.Background(), student))

	require.Len(t, store.created, 1)
	assert.NotEmpty(t, student.ID)
	assert.False(t, student.IsMatched)
	require.NotNil(t, student.Coordinates)
	assert.InDelta(t, 32.7940, student.Coordinates.Latitude, 1e-4)
}

func TestCreateStudentUnknownCityStaysUngeocoded(t *testing.T) {
	store := &fakeStudentCRUDStore{}
	svc := NewStudentService(store, geocode.NewStaticGeocoder(), zerolog.Nop())

	student := &models.Student{
		FullName:       "Dana Levi",
		Email:          "dana@example.com",
		City:           "Springfield",
		NativeLanguage: "Russian",
	}

	// A geocoding miss never blocks intake.
	require.NoError(t, svc.CreateStudent(context.Background(), student))
	assert.Nil(t, student.Coordinates)
}

func TestCreateStudentValidation(t *testing.T) {
	svc := NewStudentService(&fakeStudentCRUDStore{}, geocode.NewStaticGeocoder(), zerolog.Nop())

	cases := []struct {
		name    string
		student *models.Student
	}{
		{"missing name", &models.Student{Email: "a@b.com", NativeLanguage: "Russian"}},
		{"invalid email", &models.Student{FullName: "Dana", Email: "not-an-email", NativeLanguage: "Russian"}},
		{"missing language", &models.Student{FullName: "Dana", Email: "a@b.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.CreateStudent(context.Background(), tc.student)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		})
	}
}

func TestGetStudentRequiresID(t *testing.T) {
	svc := NewStudentService(&fakeStudentCRUDStore{}, geocode.NewStaticGeocoder(), zerolog.Nop())

	_, err := svc.GetStudent(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
