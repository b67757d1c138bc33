package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

func TestGenerateCandidatesColocatedPair(t *testing.T) {
	students := []*models.Student{testStudent()}
	volunteers := []*models.Volunteer{testVolunteer()}

	candidates := GenerateCandidates(students, volunteers, DefaultOptions())

	require.Len(t, candidates, 1)
	assert.Equal(t, "student-1", candidates[0].StudentID)
	assert.Equal(t, "volunteer-1", candidates[0].VolunteerID)
	assert.Equal(t, 100, candidates[0].Score)
	assert.Zero(t, candidates[0].DistanceKm)
}

func TestGenerateCandidatesMissingCoordinatesBypassDistanceCeiling(t *testing.T) {
	// Neither record is geocoded, so the distance reads as 0 and the ceiling
	// never applies.
	students := []*models.Student{testStudent(func(s *models.Student) { s.Coordinates = nil })}
	volunteers := []*models.Volunteer{testVolunteer(func(v *models.Volunteer) { v.Coordinates = nil })}

	opts := DefaultOptions()
	opts.MaxDistanceKm = 1

	candidates := GenerateCandidates(students, volunteers, opts)
	assert.Len(t, candidates, 1)
}

func TestGenerateCandidatesDistanceCeiling(t *testing.T) {
	students := []*models.Student{testStudent(func(s *models.Student) { s.Coordinates = &haifa })}
	volunteers := []*models.Volunteer{testVolunteer(func(v *models.Volunteer) { v.Coordinates = &eilat })}

	// Haifa to Eilat is ~360 km, beyond the default 150 km ceiling.
	candidates := GenerateCandidates(students, volunteers, DefaultOptions())
	assert.Empty(t, candidates)

	opts := DefaultOptions()
	opts.MaxDistanceKm = 500
	opts.MinScore = 0
	candidates = GenerateCandidates(students, volunteers, opts)
	assert.Len(t, candidates, 1)
}

func TestGenerateCandidatesMinScoreFloor(t *testing.T) {
	students := []*models.Student{testStudent(func(s *models.Student) { s.NativeLanguage = "Amharic" })}
	volunteers := []*models.Volunteer{testVolunteer()}

	// Locality alone scores 40, below the default floor of 60.
	candidates := GenerateCandidates(students, volunteers, DefaultOptions())
	assert.Empty(t, candidates)

	opts := DefaultOptions()
	opts.MinScore = 40
	candidates = GenerateCandidates(students, volunteers, opts)
	assert.Len(t, candidates, 1)
}

func TestGenerateCandidatesSkipsMatchedStudents(t *testing.T) {
	students := []*models.Student{
		testStudent(func(s *models.Student) { s.IsMatched = true }),
		testStudent(func(s *models.Student) { s.ID = "student-2" }),
	}
	volunteers := []*models.Volunteer{testVolunteer()}

	candidates := GenerateCandidates(students, volunteers, DefaultOptions())

	require.Len(t, candidates, 1)
	assert.Equal(t, "student-2", candidates[0].StudentID)
}

func TestGenerateCandidatesSkipsIneligibleVolunteers(t *testing.T) {
	students := []*models.Student{testStudent()}
	volunteers := []*models.Volunteer{
		testVolunteer(func(v *models.Volunteer) { v.ID = "inactive"; v.IsActive = false }),
		testVolunteer(func(v *models.Volunteer) { v.ID = "no-scholarship"; v.ScholarshipActive = false }),
		testVolunteer(func(v *models.Volunteer) { v.ID = "full"; v.CurrentMatches = v.Capacity }),
		testVolunteer(func(v *models.Volunteer) { v.ID = "available" }),
	}

	candidates := GenerateCandidates(students, volunteers, DefaultOptions())

	require.Len(t, candidates, 1)
	assert.Equal(t, "available", candidates[0].VolunteerID)
}

func TestGenerateCandidatesCityAndLanguageFilters(t *testing.T) {
	students := []*models.Student{testStudent()}
	volunteers := []*models.Volunteer{
		testVolunteer(func(v *models.Volunteer) { v.ID = "haifa-russian" }),
		testVolunteer(func(v *models.Volunteer) { v.ID = "telaviv-russian"; v.City = "Tel Aviv" }),
	}

	opts := DefaultOptions()
	opts.CityFilter = "HAIFA" // pre-filters are case-insensitive

	candidates := GenerateCandidates(students, volunteers, opts)
	require.Len(t, candidates, 1)
	assert.Equal(t, "haifa-russian", candidates[0].VolunteerID)

	opts = DefaultOptions()
	opts.LanguageFilter = "amharic"
	candidates = GenerateCandidates(students, volunteers, opts)
	assert.Empty(t, candidates)
}

func TestGenerateCandidatesGenderRequirement(t *testing.T) {
	students := []*models.Student{
		testStudent(func(s *models.Student) { s.ID = "with-gender"; s.Gender = strPtr("female") }),
		testStudent(func(s *models.Student) { s.ID = "without-gender" }),
	}
	volunteers := []*models.Volunteer{
		testVolunteer(func(v *models.Volunteer) { v.ID = "female-volunteer"; v.Gender = strPtr("female") }),
		testVolunteer(func(v *models.Volunteer) { v.ID = "male-volunteer"; v.Gender = strPtr("male") }),
	}

	opts := DefaultOptions()
	opts.RequireGenderMatch = true

	candidates := GenerateCandidates(students, volunteers, opts)

	// Absent gender on either side fails the requirement, so only the
	// female/female pair survives.
	require.Len(t, candidates, 1)
	assert.Equal(t, "with-gender", candidates[0].StudentID)
	assert.Equal(t, "female-volunteer", candidates[0].VolunteerID)
}
