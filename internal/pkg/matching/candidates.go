package matching

import (
	"strings"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

// Candidate is a scored (student, volunteer) pair eligible for allocation in
// one matching run. Candidates are in-memory only; persistence happens after
// allocation.
type Candidate struct {
	StudentID   string
	VolunteerID string
	Score       int
	Reason      string
	DistanceKm  float64
}

// Options configures one matching run
type Options struct {
	// MinScore is the minimum compatibility score for a pair to survive
	MinScore int
	// MaxDistanceKm is the distance ceiling for a pair; a distance of exactly
	// 0 always passes so that missing geodata never blocks a match
	MaxDistanceKm float64
	// ResultLimit caps how many pairs one run may allocate
	ResultLimit int
	// CityFilter restricts the volunteer pool to a city (case-insensitive)
	CityFilter string
	// LanguageFilter restricts the volunteer pool to a language (case-insensitive)
	LanguageFilter string
	// RequireGenderMatch drops pairs whose genders are absent or different
	RequireGenderMatch bool
	// Scorer tunes the compatibility scorer
	Scorer ScorerConfig
}

// DefaultOptions returns the production matching configuration
func DefaultOptions() Options {
	return Options{
		MinScore:      60,
		MaxDistanceKm: 150,
		ResultLimit:   100,
		Scorer:        DefaultScorerConfig(),
	}
}

// GenerateCandidates enumerates every (student, volunteer) pair that clears
// the distance ceiling and the score floor. Callers supply students with
// is_matched=false and volunteers that are active, program-enabled and under
// capacity; ineligible records are skipped defensively here as well so a stale
// caller snapshot cannot produce unusable candidates. No ordering guarantee;
// ordering is the allocator's concern.
func GenerateCandidates(students []*models.Student, volunteers []*models.Volunteer, opts Options) []Candidate {
	pool := filterVolunteers(volunteers, opts)

	var candidates []Candidate
	for _, student := range students {
		if student.IsMatched {
			continue
		}
		for _, volunteer := range pool {
			if opts.RequireGenderMatch {
				if student.Gender == nil || volunteer.Gender == nil || *student.Gender != *volunteer.Gender {
					continue
				}
			}

			distance := Distance(student.Coordinates, volunteer.Coordinates)
			if distance > opts.MaxDistanceKm && distance != 0 {
				continue
			}

			score, reason := Score(student, volunteer, distance, opts.Scorer)
			if score < opts.MinScore {
				continue
			}

			candidates = append(candidates, Candidate{
				StudentID:   student.ID,
				VolunteerID: volunteer.ID,
				Score:       score,
				Reason:      reason,
				DistanceKm:  distance,
			})
		}
	}

	return candidates
}

// filterVolunteers applies the eligibility gate and the optional free-text
// pre-filters to the volunteer pool
func filterVolunteers(volunteers []*models.Volunteer, opts Options) []*models.Volunteer {
	filtered := make([]*models.Volunteer, 0, len(volunteers))
	for _, v := range volunteers {
		if !v.IsEligible() {
			continue
		}
		if opts.CityFilter != "" && !strings.EqualFold(v.City, opts.CityFilter) {
			continue
		}
		if opts.LanguageFilter != "" && !strings.EqualFold(v.NativeLanguage, opts.LanguageFilter) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}
