package matching

import "github.com/jwalitptl/intake-api/internal/model"

// ComputeDistribution builds day/time/clinician histograms over slots that
// still have at least one open clinician-instance. Fully booked slots
// contribute to no histogram. ByDay and ByTime count once per slot; only
// ByClinician counts every open clinician on the slot.
func ComputeDistribution(slots []model.AvailabilitySlot, bookings []model.BookedSlot) model.SlotDistribution {
	idx := NewBookingIndex(bookings)
	dist := model.SlotDistribution{
		ByDay:       make(map[string]int),
		ByTime:      make(map[string]int),
		ByClinician: make(map[string]int),
	}

	for _, slot := range slots {
		open := idx.AvailableClinicians(slot)
		if len(open) == 0 {
			continue
		}
		dist.ByDay[slot.Day]++
		if bucket, ok := bucketFor(ParseTimeToHour(slot.Time)); ok {
			dist.ByTime[string(bucket)]++
		}
		for _, name := range open {
			dist.ByClinician[name]++
		}
	}
	return dist
}

// CountAvailable returns the number of slots with at least one open
// clinician-instance.
func CountAvailable(slots []model.AvailabilitySlot, bookings []model.BookedSlot) int {
	idx := NewBookingIndex(bookings)
	count := 0
	for _, slot := range slots {
		if len(idx.AvailableClinicians(slot)) > 0 {
			count++
		}
	}
	return count
}

// CountInsuranceMatched returns the number of slots that are both open and
// match the client's insurance.
func CountInsuranceMatched(slots []model.AvailabilitySlot, bookings []model.BookedSlot, clientInsurance string) int {
	idx := NewBookingIndex(bookings)
	count := 0
	for _, slot := range slots {
		if len(idx.AvailableClinicians(slot)) == 0 {
			continue
		}
		if MatchesClientInsurance(slot.Insurance, clientInsurance) {
			count++
		}
	}
	return count
}
