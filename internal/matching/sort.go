package matching

import (
	"sort"

	"github.com/jwalitptl/intake-api/internal/model"
)

// SortStrategy names one of the three total orders over clinician stats.
type SortStrategy string

const (
	SortByAvailability SortStrategy = "availability"
	SortAlphabetical   SortStrategy = "alpha"
	SortByInsurance    SortStrategy = "insurance"
)

// ParseSortStrategy maps a query value to a strategy, defaulting to
// availability ordering.
func ParseSortStrategy(value string) SortStrategy {
	switch SortStrategy(value) {
	case SortAlphabetical:
		return SortAlphabetical
	case SortByInsurance:
		return SortByInsurance
	default:
		return SortByAvailability
	}
}

// SortClinicianStats orders stats in place. Every strategy places the
// requested clinician first; ascending name is the final tie-break so the
// order never depends on map iteration and sorting stays idempotent.
func SortClinicianStats(stats []model.ClinicianStats, strategy SortStrategy) {
	sort.SliceStable(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		if a.IsRequestedClinician != b.IsRequestedClinician {
			return a.IsRequestedClinician
		}
		switch strategy {
		case SortAlphabetical:
			return a.Name < b.Name
		case SortByInsurance:
			if a.MatchesClientInsurance != b.MatchesClientInsurance {
				return a.MatchesClientInsurance
			}
			if a.AvailableSlots != b.AvailableSlots {
				return a.AvailableSlots > b.AvailableSlots
			}
			return a.Name < b.Name
		default:
			if a.AvailableSlots != b.AvailableSlots {
				return a.AvailableSlots > b.AvailableSlots
			}
			return a.Name < b.Name
		}
	})
}
