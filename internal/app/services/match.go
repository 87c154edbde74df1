package services

import (
	"sort"
	"strings"

	"github.com/comla/comla/internal/app/models"
)

// Score weights for the match ranking.
const (
	courseMatchScore   = 30 // once for any preferred-course overlap
	locationMatchScore = 20
	budgetMatchScore   = 20
	rankingScoreFactor = 5 // multiplied by (11 - ranking)
	maxMatches         = 10
)

// scoreCollege computes the match score of one college against a profile.
// Scores are additive and not clamped.
func scoreCollege(profile models.MatchProfile, college models.College) int {
	score := 0

	// Course overlap: a single bonus when the college offers any of the
	// preferred courses, regardless of how many overlap.
	offered := make(map[string]bool, len(college.Courses))
	for _, c := range college.Courses {
		offered[strings.ToLower(strings.TrimSpace(c))] = true
	}
	for _, want := range profile.PreferredCourses {
		if offered[strings.ToLower(strings.TrimSpace(want))] {
			score += courseMatchScore
			break
		}
	}

	// Location: the college's location must contain the profile's, case
	// insensitively. "Delhi" matches "New Delhi", not the other way around.
	if profile.Location != "" && college.Location != "" {
		if strings.Contains(strings.ToLower(college.Location), strings.ToLower(profile.Location)) {
			score += locationMatchScore
		}
	}

	// Budget: fees inside [min, max]; an absent bound is open on that side.
	min := 0.0
	if profile.MinBudget != nil {
		min = *profile.MinBudget
	}
	if college.Fees >= min && (profile.MaxBudget == nil || college.Fees <= *profile.MaxBudget) {
		score += budgetMatchScore
	}

	// Ranking bonus: rank 1 earns 50, rank 10 earns 5, and ranks past 11
	// subtract. Not clamped.
	if college.Ranking != nil && *college.Ranking > 0 {
		score += (11 - *college.Ranking) * rankingScoreFactor
	}

	return score
}

// rankColleges scores every college against the profile and returns the best
// matches in descending score order. Ties keep the input order, so equal
// scores list in catalog order. At most maxMatches results are returned.
func rankColleges(profile models.MatchProfile, colleges []models.College) []models.ScoredCollege {
	scored := make([]models.ScoredCollege, 0, len(colleges))
	for _, c := range colleges {
		scored = append(scored, models.ScoredCollege{
			College:    c,
			MatchScore: scoreCollege(profile, c),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > maxMatches {
		scored = scored[:maxMatches]
	}
	return scored
}
