package matching

import (
	"fmt"
	"strings"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

// Score weights. The raw sum can exceed 100 (60+40+15+5) but the two locality
// tiers are mutually exclusive, so the cap below is a safety invariant rather
// than a normally-triggered case.
const (
	pointsSameLanguage   = 60
	pointsSameCity       = 40
	pointsNearby         = 20
	pointsSameGender     = 15
	pointsSpecialRequest = 5

	maxScore = 100
)

// speakerRequestMarker is the generic free-text token intake uses when a
// student asked for a speaker of their language without naming it.
const speakerRequestMarker = "prefers a speaker"

// ScorerConfig tunes the locality tier of the compatibility score
type ScorerConfig struct {
	// NearbyThresholdKm is the maximum distance for the partial locality score
	NearbyThresholdKm float64
}

// DefaultScorerConfig returns the production scoring configuration
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{NearbyThresholdKm: 150}
}

// Score computes the 0-100 compatibility score for one (student, volunteer)
// pair and a human-readable justification. distanceKm must be the precomputed
// Distance between the two records; a zero distance means same city or
// unknown coordinates, both of which earn the full locality tier. Eligibility
// (capacity, active flags, already-matched students) is filtered upstream in
// candidate generation, never here.
func Score(student *models.Student, volunteer *models.Volunteer, distanceKm float64, cfg ScorerConfig) (int, string) {
	score := 0
	var clauses []string

	// Native language: exact, case-sensitive. Intake data is free text and the
	// UI offers the same spelling list on both sides, so no normalization.
	if student.NativeLanguage != "" && student.NativeLanguage == volunteer.NativeLanguage {
		score += pointsSameLanguage
		clauses = append(clauses, fmt.Sprintf("both speak %s", volunteer.NativeLanguage))
	}

	// Locality: exactly one tier applies.
	switch {
	case distanceKm == 0:
		score += pointsSameCity
		clauses = append(clauses, "same city or nearby area")
	case distanceKm <= cfg.NearbyThresholdKm:
		score += pointsNearby
		clauses = append(clauses, fmt.Sprintf("within %.0f km", distanceKm))
	}

	// Gender: only when both sides provided one.
	if student.Gender != nil && volunteer.Gender != nil && *student.Gender == *volunteer.Gender {
		score += pointsSameGender
		clauses = append(clauses, "same gender")
	}

	if matchesSpecialRequest(student.SpecialRequest, volunteer.NativeLanguage) {
		score += pointsSpecialRequest
		clauses = append(clauses, "fits the student's special request")
	}

	if score > maxScore {
		score = maxScore
	}

	return score, buildReason(score, clauses)
}

// matchesSpecialRequest reports whether the student's free-text request names
// the volunteer's language (case-insensitive substring) or carries the generic
// speaker-preference marker.
func matchesSpecialRequest(request *string, volunteerLanguage string) bool {
	if request == nil || *request == "" {
		return false
	}
	lower := strings.ToLower(*request)
	if volunteerLanguage != "" && strings.Contains(lower, strings.ToLower(volunteerLanguage)) {
		return true
	}
	return strings.Contains(lower, speakerRequestMarker)
}

// buildReason renders the qualitative bucket followed by the matched clauses
func buildReason(score int, clauses []string) string {
	var bucket string
	switch {
	case score >= 90:
		bucket = "Excellent match"
	case score >= 80:
		bucket = "Very good match"
	case score >= 70:
		bucket = "Good match"
	default:
		bucket = "Fair match"
	}

	if len(clauses) == 0 {
		return bucket
	}
	return bucket + ": " + strings.Join(clauses, ", ")
}
