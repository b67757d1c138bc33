package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
	"github.com/kesher-org/kesher-backend/internal/pkg/matching"
)

type fakeStudentStore struct {
	students []*models.Student
	err      error
}

func (f *fakeStudentStore) GetUnmatched(ctx context.Context) ([]*models.Student, error) {
	return f.students, f.err
}

type fakeVolunteerStore struct {
	volunteers []*models.Volunteer
	err        error
}

func (f *fakeVolunteerStore) GetEligible(ctx context.Context) ([]*models.Volunteer, error) {
	return f.volunteers, f.err
}

type fakeMatchStore struct {
	existing  map[string]bool // "studentID/volunteerID" -> true
	created   []*models.Match
	createErr map[string]error
}

func pairKey(studentID, volunteerID string) string {
	return studentID + "/" + volunteerID
}

func (f *fakeMatchStore) ExistsByPair(ctx context.Context, studentID, volunteerID string) (bool, error) {
	return f.existing[pairKey(studentID, volunteerID)], nil
}

func (f *fakeMatchStore) Create(ctx context.Context, match *models.Match) error {
	if err := f.createErr[pairKey(*match.StudentID, *match.VolunteerID)]; err != nil {
		return err
	}
	f.created = append(f.created, match)
	return nil
}

func newStudent(id, city, language string) *models.Student {
	return &models.Student{
		ID:             id,
		FullName:       "Student " + id,
		City:           city,
		NativeLanguage: language,
	}
}

func newVolunteer(id, city, language string, capacity, currentMatches int) *models.Volunteer {
	return &models.Volunteer{
		ID:                id,
		FullName:          "Volunteer " + id,
		City:              city,
		NativeLanguage:    language,
		Capacity:          capacity,
		CurrentMatches:    currentMatches,
		IsActive:          true,
		ScholarshipActive: true,
	}
}

func newMatchingService(students *fakeStudentStore, volunteers *fakeVolunteerStore, matches *fakeMatchStore) *MatchingService {
	return NewMatchingService(students, volunteers, matches, matching.DefaultOptions(), zerolog.Nop())
}

func TestGenerateMatchesCreatesPendingMatches(t *testing.T) {
	students := &fakeStudentStore{students: []*models.Student{newStudent("s1", "Haifa", "Russian")}}
	volunteers := &fakeVolunteerStore{volunteers: []*models.Volunteer{newVolunteer("v1", "Haifa", "Russian", 3, 0)}}
	matches := &fakeMatchStore{}

	svc := newMatchingService(students, volunteers, matches)

	result, err := svc.GenerateMatches(context.Background(), GenerateParams{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuggestedCount)
	require.Len(t, matches.created, 1)

	created := matches.created[0]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "s1", *created.StudentID)
	assert.Equal(t, "v1", *created.VolunteerID)
	assert.Equal(t, 100, created.ConfidenceScore)
	assert.Equal(t, models.MatchStatusPending, created.Status)
	assert.Contains(t, created.MatchReason, "Excellent match")
}

func TestGenerateMatchesEmptyPoolsIsSuccess(t *testing.T) {
	svc := newMatchingService(&fakeStudentStore{}, &fakeVolunteerStore{}, &fakeMatchStore{})

	result, err := svc.GenerateMatches(context.Background(), GenerateParams{})

	require.NoError(t, err)
	assert.Zero(t, result.SuggestedCount)
	assert.NotEmpty(t, result.Message)
}

func TestGenerateMatchesSkipsExistingPairsRegardlessOfStatus(t *testing.T) {
	students := &fakeStudentStore{students: []*models.Student{newStudent("s1", "Haifa", "Russian")}}
	volunteers := &fakeVolunteerStore{volunteers: []*models.Volunteer{newVolunteer("v1", "Haifa", "Russian", 3, 0)}}
	matches := &fakeMatchStore{existing: map[string]bool{pairKey("s1", "v1"): true}}

	svc := newMatchingService(students, volunteers, matches)

	result, err := svc.GenerateMatches(context.Background(), GenerateParams{})

	require.NoError(t, err)
	assert.Zero(t, result.SuggestedCount)
	assert.Empty(t, matches.created)
	assert.Contains(t, result.Message, "already exist")
}

func TestGenerateMatchesIsIdempotent(t *testing.T) {
	students := &fakeStudentStore{students: []*models.Student{newStudent("s1", "Haifa", "Russian")}}
	volunteers := &fakeVolunteerStore{volunteers: []*models.Volunteer{newVolunteer("v1", "Haifa", "Russian", 3, 0)}}
	matches := &fakeMatchStore{existing: map[string]bool{}}

	svc := newMatchingService(students, volunteers, matches)

	first, err := svc.GenerateMatches(context.Background(), GenerateParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.SuggestedCount)

	// The first run's insert is now an existing pair.
	matches.existing[pairKey("s1", "v1")] = true

	second, err := svc.GenerateMatches(context.Background(), GenerateParams{})
	require.NoError(t, err)
	assert.Zero(t, second.SuggestedCount)
	assert.Len(t, matches.created, 1)
}

func TestGenerateMatchesConcurrentInsertReadsAsSkip(t *testing.T) {
	students := &fakeStudentStore{students: []*models.Student{newStudent("s1", "Haifa", "Russian")}}
	volunteers := &fakeVolunteerStore{volunteers: []*models.Volunteer{newVolunteer("v1", "Haifa", "Russian", 3, 0)}}
	matches := &fakeMatchStore{
		createErr: map[string]error{pairKey("s1", "v1"): apperrors.ErrMatchAlreadyExists},
	}

	svc := newMatchingService(students, volunteers, matches)

	result, err := svc.GenerateMatches(context.Background(), GenerateParams{})

	require.NoError(t, err)
	assert.Zero(t, result.SuggestedCount)
	assert.Contains(t, result.Message, "already exist")
}

func TestGenerateMatchesPartialPersistenceFailure(t *testing.T) {
	students := &fakeStudentStore{students: []*models.Student{
		newStudent("s1", "Haifa", "Russian"),
		newStudent("s2", "Haifa", "Russian"),
	}}
	volunteers := &fakeVolunteerStore{volunteers: []*models.Volunteer{newVolunteer("v1", "Haifa", "Russian", 2, 0)}}
	matches := &fakeMatchStore{
		createErr: map[string]error{pairKey("s1", "v1"): errors.New("connection reset")},
	}

	svc := newMatchingService(students, volunteers, matches)

	result, err := svc.GenerateMatches(context.Background(), GenerateParams{})

	// One insert failed but the run still reports the survivor.
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuggestedCount)
	require.Len(t, matches.created, 1)
	assert.Equal(t, "s2", *matches.created[0].StudentID)
}

func TestGenerateMatchesRespectsRemainingCapacity(t *testing.T) {
	students := &fakeStudentStore{students: []*models.Student{
		newStudent("s1", "Haifa", "Russian"),
		newStudent("s2", "Haifa", "Russian"),
		newStudent("s3", "Haifa", "Russian"),
	}}
	// Capacity 3 with 2 current matches leaves one slot.
	volunteers := &fakeVolunteerStore{volunteers: []*models.Volunteer{newVolunteer("v1", "Haifa", "Russian", 3, 2)}}
	matches := &fakeMatchStore{}

	svc := newMatchingService(students, volunteers, matches)

	result, err := svc.GenerateMatches(context.Background(), GenerateParams{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuggestedCount)
}

func TestGenerateMatchesResultLimitOverride(t *testing.T) {
	var studentList []*models.Student
	for i := 1; i <= 5; i++ {
		studentList = append(studentList, newStudent(fmt.Sprintf("s%d", i), "Haifa", "Russian"))
	}
	students := &fakeStudentStore{students: studentList}
	volunteers := &fakeVolunteerStore{volunteers: []*models.Volunteer{newVolunteer("v1", "Haifa", "Russian", 10, 0)}}
	matches := &fakeMatchStore{}

	svc := newMatchingService(students, volunteers, matches)

	limit := 2
	result, err := svc.GenerateMatches(context.Background(), GenerateParams{ResultLimit: &limit})

	require.NoError(t, err)
	assert.Equal(t, 2, result.SuggestedCount)
}

func TestGenerateMatchesRejectsInvalidOverrides(t *testing.T) {
	svc := newMatchingService(&fakeStudentStore{}, &fakeVolunteerStore{}, &fakeMatchStore{})

	badScore := 101
	_, err := svc.GenerateMatches(context.Background(), GenerateParams{MinScore: &badScore})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	badDistance := -1.0
	_, err = svc.GenerateMatches(context.Background(), GenerateParams{MaxDistanceKm: &badDistance})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	badLimit := 0
	_, err = svc.GenerateMatches(context.Background(), GenerateParams{ResultLimit: &badLimit})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGenerateMatchesStoreErrorsPropagate(t *testing.T) {
	students := &fakeStudentStore{err: errors.New("db down")}
	svc := newMatchingService(students, &fakeVolunteerStore{}, &fakeMatchStore{})

	_, err := svc.GenerateMatches(context.Background(), GenerateParams{})
	assert.Error(t, err)
}
