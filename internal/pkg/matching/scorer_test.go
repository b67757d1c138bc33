package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

func strPtr(s string) *string { return &s }

func testStudent(mods ...func(*models.Student)) *models.Student {
	s := &models.Student{
		ID:             "student-1",
		FullName:       "Dana Levi",
		City:           "Haifa",
		NativeLanguage: "Russian",
	}
	for _, mod := range mods {
		mod(s)
	}
	return s
}

func testVolunteer(mods ...func(*models.Volunteer)) *models.Volunteer {
	v := &models.Volunteer{
		ID:                "volunteer-1",
		FullName:          "Misha Katz",
		City:              "Haifa",
		NativeLanguage:    "Russian",
		Capacity:          3,
		IsActive:          true,
		ScholarshipActive: true,
	}
	for _, mod := range mods {
		mod(v)
	}
	return v
}

func TestScoreSameLanguageSameCity(t *testing.T) {
	score, reason := Score(testStudent(), testVolunteer(), 0, DefaultScorerConfig())

	assert.Equal(t, 100, score)
	assert.Contains(t, reason, "Excellent match")
	assert.Contains(t, reason, "both speak Russian")
	assert.Contains(t, reason, "same city or nearby area")
}

func TestScoreLanguageIsCaseSensitive(t *testing.T) {
	student := testStudent(func(s *models.Student) { s.NativeLanguage = "russian" })

	score, _ := Score(student, testVolunteer(), 0, DefaultScorerConfig())

	// Only the locality tier fires.
	assert.Equal(t, 40, score)
}

func TestScoreLocalityTiersAreExclusive(t *testing.T) {
	cases := []struct {
		name       string
		distanceKm float64
		want       int
	}{
		{"zero distance earns full locality", 0, 100},
		{"nearby distance earns partial locality", 100, 80},
		{"beyond threshold earns nothing", 200, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := Score(testStudent(), testVolunteer(), tc.distanceKm, DefaultScorerConfig())
			assert.Equal(t, tc.want, score)
		})
	}
}

func TestScoreGenderRequiresBothSides(t *testing.T) {
	cfg := DefaultScorerConfig()

	both := testStudent(func(s *models.Student) { s.Gender = strPtr("female") })
	volunteer := testVolunteer(func(v *models.Volunteer) { v.Gender = strPtr("female") })
	score, _ := Score(both, volunteer, 200, cfg)
	assert.Equal(t, 75, score)

	oneSided := testStudent(func(s *models.Student) { s.Gender = strPtr("female") })
	score, _ = Score(oneSided, testVolunteer(), 200, cfg)
	assert.Equal(t, 60, score)

	different := testStudent(func(s *models.Student) { s.Gender = strPtr("male") })
	score, _ = Score(different, volunteer, 200, cfg)
	assert.Equal(t, 60, score)
}

func TestScoreSpecialRequest(t *testing.T) {
	cfg := DefaultScorerConfig()

	cases := []struct {
		name    string
		request *string
		want    int
	}{
		{"names the volunteer's language", strPtr("Would love a RUSSIAN speaking mentor"), 65},
		{"generic speaker preference", strPtr("prefers a speaker of her own language"), 65},
		{"unrelated request", strPtr("needs help with math homework"), 60},
		{"empty request", strPtr(""), 60},
		{"no request", nil, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			student := testStudent(func(s *models.Student) { s.SpecialRequest = tc.request })
			score, _ := Score(student, testVolunteer(), 200, cfg)
			assert.Equal(t, tc.want, score)
		})
	}
}

func TestScoreIsCappedAtOneHundred(t *testing.T) {
	student := testStudent(func(s *models.Student) {
		s.Gender = strPtr("female")
		s.SpecialRequest = strPtr("prefers a speaker of Russian")
	})
	volunteer := testVolunteer(func(v *models.Volunteer) { v.Gender = strPtr("female") })

	// Raw sum would be 60+40+15+5 = 120.
	score, reason := Score(student, volunteer, 0, DefaultScorerConfig())

	assert.Equal(t, 100, score)
	assert.Contains(t, reason, "Excellent match")
}

func TestScoreQualityBuckets(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "Excellent match"},
		{90, "Excellent match"},
		{80, "Very good match"},
		{75, "Good match"},
		{60, "Fair match"},
		{0, "Fair match"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, buildReason(tc.score, nil))
	}
}

func TestScoreNothingInCommon(t *testing.T) {
	student := testStudent(func(s *models.Student) { s.NativeLanguage = "Amharic" })

	score, reason := Score(student, testVolunteer(), 200, DefaultScorerConfig())

	assert.Equal(t, 0, score)
	assert.Equal(t, "Fair match", reason)
}
