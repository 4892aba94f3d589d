package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/intake-api/internal/model"
)

func testSlots() []model.AvailabilitySlot {
	return []model.AvailabilitySlot{
		{ID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"A", "B"}, Insurance: "Aetna"},
		{ID: "tue-10", Day: "Tuesday", Time: "10:00 AM", Clinicians: []string{"A"}, Insurance: ""},
	}
}

func TestBookingIndex(t *testing.T) {
	idx := NewBookingIndex([]model.BookedSlot{{SlotID: "mon-9", Clinician: "A"}})

	assert.True(t, idx.Booked("mon-9", "A"))
	assert.False(t, idx.Booked("mon-9", "B"))
	assert.False(t, idx.Booked("tue-10", "A"))

	open := idx.AvailableClinicians(testSlots()[0])
	assert.Equal(t, []string{"B"}, open)
}

func TestComputeClinicianStats_EndToEnd(t *testing.T) {
	slots := testSlots()
	bookings := []model.BookedSlot{{SlotID: "mon-9", Clinician: "A"}}

	stats := ComputeClinicianStats(slots, bookings, StatsParams{})
	require.Len(t, stats, 2)

	a := stats[0]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, 2, a.TotalSlots)
	assert.Equal(t, 1, a.BookedSlots)
	assert.Equal(t, 1, a.AvailableSlots)
	assert.ElementsMatch(t, []string{"Monday", "Tuesday"}, a.Days)

	b := stats[1]
	assert.Equal(t, "B", b.Name)
	assert.Equal(t, 1, b.TotalSlots)
	assert.Equal(t, 0, b.BookedSlots)
	assert.Equal(t, 1, b.AvailableSlots)
	assert.Equal(t, []string{"Aetna"}, b.Insurances)
}

func TestComputeClinicianStats_Invariants(t *testing.T) {
	slots := []model.AvailabilitySlot{
		{ID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"A", "B", "C"}, Insurance: "Aetna, Cigna"},
		{ID: "mon-1", Day: "Monday", Time: "1:00 PM", Clinicians: []string{"B"}, Insurance: "Cigna"},
		{ID: "wed-5", Day: "Wednesday", Time: "5:00 PM", Clinicians: []string{"A", "C"}, Insurance: ""},
	}
	bookings := []model.BookedSlot{
		{SlotID: "mon-9", Clinician: "B"},
		{SlotID: "wed-5", Clinician: "A"},
		{SlotID: "wed-5", Clinician: "C"},
	}

	stats := ComputeClinicianStats(slots, bookings, StatsParams{})

	sumTotal := 0
	for _, s := range stats {
		assert.Equal(t, s.TotalSlots, s.AvailableSlots+s.BookedSlots, "clinician %s", s.Name)
		sumTotal += s.TotalSlots
	}

	wantInstances := 0
	for _, slot := range slots {
		wantInstances += len(slot.Clinicians)
	}
	assert.Equal(t, wantInstances, sumTotal)
}

func TestComputeClinicianStats_RequestedClinicianCaseInsensitive(t *testing.T) {
	stats := ComputeClinicianStats(testSlots(), nil, StatsParams{RequestedClinician: "a"})
	require.Len(t, stats, 2)
	assert.True(t, stats[0].IsRequestedClinician)
	assert.False(t, stats[1].IsRequestedClinician)
}

func TestComputeClinicianStats_CaseSensitiveIdentity(t *testing.T) {
	slots := []model.AvailabilitySlot{
		{ID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"Dr. Smith"}},
		{ID: "tue-9", Day: "Tuesday", Time: "9:00 AM", Clinicians: []string{"dr. smith"}},
	}
	stats := ComputeClinicianStats(slots, nil, StatsParams{})
	assert.Len(t, stats, 2)
}

func TestComputeClinicianStats_InsuranceMatchUsesCompleteSet(t *testing.T) {
	// The Cigna tag for clinician A arrives on the second slot; the match
	// flag must reflect the complete accumulated set.
	slots := []model.AvailabilitySlot{
		{ID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"A"}, Insurance: "Aetna"},
		{ID: "tue-9", Day: "Tuesday", Time: "9:00 AM", Clinicians: []string{"A"}, Insurance: "Cigna"},
		{ID: "wed-9", Day: "Wednesday", Time: "9:00 AM", Clinicians: []string{"B"}, Insurance: "Aetna"},
	}

	stats := ComputeClinicianStats(slots, nil, StatsParams{ClientInsurance: "Cigna"})
	require.Len(t, stats, 2)
	assert.True(t, stats[0].MatchesClientInsurance)
	assert.False(t, stats[1].MatchesClientInsurance)
}

func TestComputeClinicianStats_EmptyInputs(t *testing.T) {
	assert.Empty(t, ComputeClinicianStats(nil, nil, StatsParams{}))
}
