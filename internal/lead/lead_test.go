package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead_MapsCandidateAndScore(t *testing.T) {
	c := Candidate{
		ID:      "place-1",
		Name:    "Riverside Bakery",
		Phone:   "(555) 210-8876",
		Address: "14 Mill St, Portsmouth, NH 03801",
		Types:   []string{"bakery", "cafe"},
		Location: &Coordinates{
			Latitude:  43.0718,
			Longitude: -70.7626,
		},
	}
	s := ScoreResult{
		Score:           82,
		Urgency:         UrgencyHigh,
		Category:        "Food & Beverage",
		ContactStrategy: "Call mid-morning, mention online ordering.",
	}

	l := NewLead(c, s)

	require.NotEmpty(t, l.ID)
	assert.Equal(t, "Riverside Bakery", l.Name)
	assert.Equal(t, "(555) 210-8876", l.Phone)
	assert.Empty(t, l.Website)
	assert.False(t, l.HasWebsite)
	assert.Equal(t, []string{"bakery", "cafe"}, l.Tags)
	assert.InDelta(t, 82.0, l.Score, 0.001)
	assert.Equal(t, UrgencyHigh, l.Urgency)
	assert.Equal(t, SourcePlaces, l.Source)
}

func TestNewLead_HasWebsiteFlag(t *testing.T) {
	c := Candidate{ID: "place-2", Name: "Acme Plumbing", Website: "https://acmeplumbing.example"}
	l := NewLead(c, FallbackScore())

	assert.True(t, l.HasWebsite)
	assert.Equal(t, "https://acmeplumbing.example", l.Website)
}

func TestFallbackScore_Shape(t *testing.T) {
	s := FallbackScore()

	assert.InDelta(t, 50.0, s.Score, 0.001)
	assert.Equal(t, UrgencyMedium, s.Urgency)
	assert.Contains(t, s.Reasoning, "manual review")
	assert.True(t, s.Urgency.Valid())
}

func TestSkippedScore_Shape(t *testing.T) {
	s := SkippedScore()

	assert.Zero(t, s.Score)
	assert.Equal(t, UrgencyLow, s.Urgency)
	assert.Equal(t, "Unknown", s.Category)
	assert.Equal(t, "Skip", s.ContactStrategy)
}

func TestUrgency_Valid(t *testing.T) {
	assert.True(t, UrgencyLow.Valid())
	assert.True(t, UrgencyMedium.Valid())
	assert.True(t, UrgencyHigh.Valid())
	assert.False(t, Urgency("URGENT").Valid())
	assert.False(t, Urgency("").Valid())
}
