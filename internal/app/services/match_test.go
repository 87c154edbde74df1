package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comla/comla/internal/app/models"
)

func floatPtr(v float64) *float64 { return &v }
func rankPtr(v int) *int          { return &v }

func TestScoreCollegeAllComponents(t *testing.T) {
	profile := models.MatchProfile{
		PreferredCourses: []string{"Computer Science", "Physics"},
		Location:         "Delhi",
		MinBudget:        floatPtr(10000),
		MaxBudget:        floatPtr(60000),
	}
	college := models.College{
		Name:     "A",
		Location: "New Delhi",
		Courses:  []string{"Computer Science", "Physics", "Chemistry"},
		Fees:     50000,
		Ranking:  rankPtr(1),
	}

	// Course overlap (30) + location (20) + budget (20) + rank 1 bonus (50)
	assert.Equal(t, 120, scoreCollege(profile, college))
}

func TestScoreCollegeCourseOverlapScoresOnce(t *testing.T) {
	profile := models.MatchProfile{
		PreferredCourses: []string{"Computer Science", "Physics", "Chemistry"},
		MinBudget:        floatPtr(10), // disable budget bonus
	}
	college := models.College{
		Courses: []string{"Computer Science", "Physics", "Chemistry"},
	}

	// Three overlapping courses still earn a single bonus.
	assert.Equal(t, 30, scoreCollege(profile, college))
}

func TestScoreCollegeWorkedExample(t *testing.T) {
	profile := models.MatchProfile{
		PreferredCourses: []string{"CS"},
		Location:         "Delhi",
		MinBudget:        floatPtr(0),
		MaxBudget:        floatPtr(50000),
	}
	a := models.College{Name: "A", Fees: 40000, Location: "Delhi", Courses: []string{"CS"}, Ranking: rankPtr(1)}
	b := models.College{Name: "B", Fees: 90000, Location: "Mumbai", Courses: []string{"CS"}, Ranking: rankPtr(5)}

	assert.Equal(t, 120, scoreCollege(profile, a))
	assert.Equal(t, 60, scoreCollege(profile, b))

	ranked := rankColleges(profile, []models.College{b, a})
	assert.Equal(t, "A", ranked[0].Name)
	assert.Equal(t, "B", ranked[1].Name)
}

func TestScoreCollegeNotClamped(t *testing.T) {
	profile := models.MatchProfile{
		PreferredCourses: []string{"A"},
		Location:         "Pune",
	}
	college := models.College{
		Location: "Pune",
		Courses:  []string{"A", "B"},
		Fees:     0,
		Ranking:  rankPtr(1),
	}

	// 30 + 20 + 20 + 50 = 120, scores are additive with no upper cap
	assert.Equal(t, 120, scoreCollege(profile, college))
}

func TestScoreCollegeLocationSubstring(t *testing.T) {
	profile := models.MatchProfile{Location: "delhi"}

	match := models.College{Location: "New Delhi", Fees: 1}
	noMatch := models.College{Location: "Mumbai", Fees: 1}

	// Budget bonus applies in both cases: no min means 0, no max means open.
	assert.Equal(t, 40, scoreCollege(profile, match))
	assert.Equal(t, 20, scoreCollege(profile, noMatch))
}

func TestScoreCollegeLocationMatchIsDirectional(t *testing.T) {
	profile := models.MatchProfile{
		Location:  "New Delhi",
		MinBudget: floatPtr(10), // disable budget bonus
	}
	college := models.College{Location: "Delhi"}

	// The college's location must contain the profile's, not the reverse.
	assert.Equal(t, 0, scoreCollege(profile, college))
}

func TestScoreCollegeBudgetBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		fees     float64
		want     int
	}{
		{"inside range", floatPtr(1000), floatPtr(5000), 3000, 20},
		{"below min", floatPtr(1000), floatPtr(5000), 500, 0},
		{"above max", floatPtr(1000), floatPtr(5000), 9000, 0},
		{"no min bound", nil, floatPtr(5000), 100, 20},
		{"no max bound", floatPtr(1000), nil, 1000000, 20},
		{"no bounds at all", nil, nil, 1234, 20},
		{"exactly min", floatPtr(1000), floatPtr(5000), 1000, 20},
		{"exactly max", floatPtr(1000), floatPtr(5000), 5000, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.MatchProfile{MinBudget: tt.min, MaxBudget: tt.max}
			college := models.College{Fees: tt.fees}
			assert.Equal(t, tt.want, scoreCollege(profile, college))
		})
	}
}

func TestScoreCollegeRankingBonus(t *testing.T) {
	profile := models.MatchProfile{MinBudget: floatPtr(10)} // disable budget bonus

	cases := map[int]int{1: 50, 5: 30, 10: 5, 11: 0, 12: -5, 50: -195}
	for rank, want := range cases {
		college := models.College{Ranking: rankPtr(rank)}
		assert.Equal(t, want, scoreCollege(profile, college), "rank %d", rank)
	}

	// No ranking at all earns nothing.
	assert.Equal(t, 0, scoreCollege(profile, models.College{}))
}

func TestRankCollegesOrdersByScoreDescending(t *testing.T) {
	profile := models.MatchProfile{
		PreferredCourses: []string{"Computer Science"},
		Location:         "Delhi",
	}
	colleges := []models.College{
		{Name: "B", Location: "Mumbai", Courses: []string{"Arts"}},
		{Name: "A", Location: "Delhi", Courses: []string{"Computer Science"}},
		{Name: "C", Location: "Delhi", Courses: []string{"Arts"}},
	}

	ranked := rankColleges(profile, colleges)

	assert.Equal(t, "A", ranked[0].Name)
	assert.Equal(t, "C", ranked[1].Name)
	assert.Equal(t, "B", ranked[2].Name)
	assert.Greater(t, ranked[0].MatchScore, ranked[1].MatchScore)
}

func TestRankCollegesStableOnTies(t *testing.T) {
	profile := models.MatchProfile{}
	colleges := []models.College{
		{Name: "First"},
		{Name: "Second"},
		{Name: "Third"},
	}

	ranked := rankColleges(profile, colleges)

	// Equal scores keep catalog order.
	assert.Equal(t, "First", ranked[0].Name)
	assert.Equal(t, "Second", ranked[1].Name)
	assert.Equal(t, "Third", ranked[2].Name)
}

func TestRankCollegesCapsAtTen(t *testing.T) {
	profile := models.MatchProfile{Location: "Delhi"}

	colleges := make([]models.College, 0, 25)
	for i := 0; i < 25; i++ {
		colleges = append(colleges, models.College{
			Name:     fmt.Sprintf("College %d", i),
			Location: "Delhi",
		})
	}

	ranked := rankColleges(profile, colleges)
	assert.Len(t, ranked, 10)
}

func TestRankCollegesEmptyCatalog(t *testing.T) {
	ranked := rankColleges(models.MatchProfile{}, nil)
	assert.Empty(t, ranked)
}

func TestScoreCollegeCourseMatchingCaseInsensitive(t *testing.T) {
	profile := models.MatchProfile{
		PreferredCourses: []string{"computer science"},
		MinBudget:        floatPtr(10), // disable budget bonus
	}
	college := models.College{Courses: []string{"Computer Science"}}

	assert.Equal(t, 30, scoreCollege(profile, college))
}
