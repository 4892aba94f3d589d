package matching

import (
	"strings"

	"github.com/jwalitptl/intake-api/internal/model"
)

// FilterCriteria are AND-combined slot filters. Zero values mean "no
// constraint". ExactTime takes precedence over TimeRange when both are set.
type FilterCriteria struct {
	// Clinicians restricts the open set to these names (case-insensitive).
	Clinicians []string
	// Days restricts slots to these weekday names.
	Days []string
	// TimeRange keeps only slots whose label parses into the range.
	TimeRange TimeRange
	// ExactTime keeps only slots whose label equals this one.
	ExactTime string
	// RequireInsuranceMatch keeps only slots matching ClientInsurance.
	RequireInsuranceMatch bool
	ClientInsurance       string
	// ExcludeSlotIDs drops previously offered slots.
	ExcludeSlotIDs []string
}

// FilteredSlot pairs a surviving slot with its open clinicians after booking
// subtraction and the clinician allowlist.
type FilteredSlot struct {
	Slot                model.AvailabilitySlot
	AvailableClinicians []string
}

// FilterSlots applies the slot-level criteria, then computes open clinicians
// and applies the allowlist. A slot contributes to the result only if at
// least one clinician remains.
func FilterSlots(slots []model.AvailabilitySlot, bookings []model.BookedSlot, criteria FilterCriteria) []FilteredSlot {
	return filterAvailable(slots, NewBookingIndex(bookings), criteria)
}

// filterAvailable is the availability computation shared by the filter and
// the random selectors.
func filterAvailable(slots []model.AvailabilitySlot, idx BookingIndex, criteria FilterCriteria) []FilteredSlot {
	var days map[string]struct{}
	if len(criteria.Days) > 0 {
		days = make(map[string]struct{}, len(criteria.Days))
		for _, d := range criteria.Days {
			days[d] = struct{}{}
		}
	}
	var allow map[string]struct{}
	if len(criteria.Clinicians) > 0 {
		allow = make(map[string]struct{}, len(criteria.Clinicians))
		for _, c := range criteria.Clinicians {
			allow[strings.ToLower(c)] = struct{}{}
		}
	}
	var exclude map[string]struct{}
	if len(criteria.ExcludeSlotIDs) > 0 {
		exclude = make(map[string]struct{}, len(criteria.ExcludeSlotIDs))
		for _, id := range criteria.ExcludeSlotIDs {
			exclude[id] = struct{}{}
		}
	}

	var out []FilteredSlot
	for _, slot := range slots {
		if _, skip := exclude[slot.ID]; skip {
			continue
		}
		if days != nil {
			if _, ok := days[slot.Day]; !ok {
				continue
			}
		}
		if criteria.ExactTime != "" {
			if !strings.EqualFold(strings.TrimSpace(slot.Time), strings.TrimSpace(criteria.ExactTime)) {
				continue
			}
		} else if criteria.TimeRange != "" {
			if !InTimeRange(slot.Time, criteria.TimeRange) {
				continue
			}
		}
		if criteria.RequireInsuranceMatch && !MatchesClientInsurance(slot.Insurance, criteria.ClientInsurance) {
			continue
		}

		open := idx.AvailableClinicians(slot)
		if allow != nil {
			kept := make([]string, 0, len(open))
			for _, name := range open {
				if _, ok := allow[strings.ToLower(name)]; ok {
					kept = append(kept, name)
				}
			}
			open = kept
		}
		if len(open) == 0 {
			continue
		}
		out = append(out, FilteredSlot{Slot: slot, AvailableClinicians: open})
	}
	return out
}
