package matching

import (
	"strings"

	"github.com/jwalitptl/intake-api/internal/model"
)

// StatsParams carry the optional client context for the aggregation.
type StatsParams struct {
	RequestedClinician string
	ClientInsurance    string
}

// ComputeClinicianStats folds all slots into one record per distinct clinician
// name encountered. Identity is case-sensitive ("Dr. Smith" and "dr. smith"
// are different clinicians); only the requested-clinician comparison is
// case-insensitive. The client-insurance match flag is set in a second pass
// over the finished records because it depends on each clinician's complete
// insurance set, not a partial one seen slot-by-slot.
func ComputeClinicianStats(slots []model.AvailabilitySlot, bookings []model.BookedSlot, params StatsParams) []model.ClinicianStats {
	idx := NewBookingIndex(bookings)

	type accumulator struct {
		stats      model.ClinicianStats
		insurances map[string]struct{}
		days       map[string]struct{}
	}

	order := make([]string, 0)
	byName := make(map[string]*accumulator)

	for _, slot := range slots {
		tags := ParseInsurances(slot.Insurance)
		for _, name := range slot.Clinicians {
			acc, ok := byName[name]
			if !ok {
				acc = &accumulator{
					stats: model.ClinicianStats{
						Name:                 name,
						IsRequestedClinician: params.RequestedClinician != "" && strings.EqualFold(name, params.RequestedClinician),
					},
					insurances: make(map[string]struct{}),
					days:       make(map[string]struct{}),
				}
				byName[name] = acc
				order = append(order, name)
			}

			acc.stats.TotalSlots++
			if idx.Booked(slot.ID, name) {
				acc.stats.BookedSlots++
			} else {
				acc.stats.AvailableSlots++
			}

			if _, seen := acc.days[slot.Day]; !seen {
				acc.days[slot.Day] = struct{}{}
				acc.stats.Days = append(acc.stats.Days, slot.Day)
			}
			for _, tag := range tags {
				if _, seen := acc.insurances[tag]; !seen {
					acc.insurances[tag] = struct{}{}
					acc.stats.Insurances = append(acc.stats.Insurances, tag)
				}
			}
		}
	}

	out := make([]model.ClinicianStats, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name].stats)
	}

	if params.ClientInsurance != "" {
		for i := range out {
			joined := strings.Join(out[i].Insurances, ", ")
			out[i].MatchesClientInsurance = MatchesClientInsurance(joined, params.ClientInsurance)
		}
	}

	return out
}
