package matching

import "github.com/jwalitptl/intake-api/internal/model"

// BookingIndex answers "is this clinician's instance of this slot taken" in
// O(1). A (slot, clinician) pair is available iff it is absent from the index;
// no other state determines availability.
type BookingIndex map[string]struct{}

func bookingKey(slotID, clinician string) string {
	return slotID + "|" + clinician
}

// NewBookingIndex builds the index in one pass over the bookings snapshot.
func NewBookingIndex(bookings []model.BookedSlot) BookingIndex {
	idx := make(BookingIndex, len(bookings))
	for _, b := range bookings {
		idx[bookingKey(b.SlotID, b.Clinician)] = struct{}{}
	}
	return idx
}

// Booked reports whether the given clinician's instance of a slot is taken.
func (idx BookingIndex) Booked(slotID, clinician string) bool {
	_, ok := idx[bookingKey(slotID, clinician)]
	return ok
}

// AvailableClinicians returns the subset of a slot's clinicians whose
// instance is not booked, preserving slot order.
func (idx BookingIndex) AvailableClinicians(slot model.AvailabilitySlot) []string {
	var open []string
	for _, c := range slot.Clinicians {
		if !idx.Booked(slot.ID, c) {
			open = append(open, c)
		}
	}
	return open
}
