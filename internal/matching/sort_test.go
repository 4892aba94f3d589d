package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/intake-api/internal/model"
)

func sortFixture() []model.ClinicianStats {
	return []model.ClinicianStats{
		{Name: "Casey", AvailableSlots: 5},
		{Name: "Avery", AvailableSlots: 2, MatchesClientInsurance: true},
		{Name: "Blake", AvailableSlots: 5},
		{Name: "Drew", AvailableSlots: 1, IsRequestedClinician: true},
	}
}

func names(stats []model.ClinicianStats) []string {
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.Name
	}
	return out
}

func TestSortClinicianStats(t *testing.T) {
	tests := []struct {
		strategy SortStrategy
		want     []string
	}{
		{SortByAvailability, []string{"Drew", "Blake", "Casey", "Avery"}},
		{SortAlphabetical, []string{"Drew", "Avery", "Blake", "Casey"}},
		{SortByInsurance, []string{"Drew", "Avery", "Blake", "Casey"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			stats := sortFixture()
			SortClinicianStats(stats, tt.strategy)
			assert.Equal(t, tt.want, names(stats))
		})
	}
}

func TestSortClinicianStats_RequestedAlwaysFirst(t *testing.T) {
	for _, strategy := range []SortStrategy{SortByAvailability, SortAlphabetical, SortByInsurance} {
		stats := sortFixture()
		SortClinicianStats(stats, strategy)
		assert.Equal(t, "Drew", stats[0].Name, "strategy %s", strategy)
	}
}

func TestSortClinicianStats_Idempotent(t *testing.T) {
	for _, strategy := range []SortStrategy{SortByAvailability, SortAlphabetical, SortByInsurance} {
		once := sortFixture()
		SortClinicianStats(once, strategy)

		twice := make([]model.ClinicianStats, len(once))
		copy(twice, once)
		SortClinicianStats(twice, strategy)

		assert.Equal(t, once, twice, "strategy %s", strategy)
	}
}

func TestParseSortStrategy(t *testing.T) {
	assert.Equal(t, SortAlphabetical, ParseSortStrategy("alpha"))
	assert.Equal(t, SortByInsurance, ParseSortStrategy("insurance"))
	assert.Equal(t, SortByAvailability, ParseSortStrategy("availability"))
	assert.Equal(t, SortByAvailability, ParseSortStrategy(""))
	assert.Equal(t, SortByAvailability, ParseSortStrategy("bogus"))
}
