package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/intake-api/internal/model"
)

func TestComputeDistribution_SpecScenario(t *testing.T) {
	slots := testSlots()
	bookings := []model.BookedSlot{{SlotID: "mon-9", Clinician: "A"}}

	dist := ComputeDistribution(slots, bookings)

	// Monday's slot still has B open, so the slot counts once; Tuesday's slot
	// is fully open. Per-slot counting, not per-clinician.
	assert.Equal(t, map[string]int{"Monday": 1, "Tuesday": 1}, dist.ByDay)
	assert.Equal(t, map[string]int{"morning": 2}, dist.ByTime)
	assert.Equal(t, map[string]int{"A": 1, "B": 1}, dist.ByClinician)
}

func TestComputeDistribution_SkipsFullyBookedSlots(t *testing.T) {
	slots := testSlots()
	bookings := []model.BookedSlot{
		{SlotID: "mon-9", Clinician: "A"},
		{SlotID: "mon-9", Clinician: "B"},
	}

	dist := ComputeDistribution(slots, bookings)

	assert.Equal(t, map[string]int{"Tuesday": 1}, dist.ByDay)
	assert.Equal(t, map[string]int{"morning": 1}, dist.ByTime)
	assert.Equal(t, map[string]int{"A": 1}, dist.ByClinician)
}

func TestComputeDistribution_TimeBuckets(t *testing.T) {
	slots := []model.AvailabilitySlot{
		{ID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"A"}},
		{ID: "mon-1", Day: "Monday", Time: "1:00 PM", Clinicians: []string{"A"}},
		{ID: "mon-6", Day: "Monday", Time: "6:00 PM", Clinicians: []string{"A"}},
		// Before the morning range; contributes to ByDay but no time bucket.
		{ID: "mon-7", Day: "Monday", Time: "7:00 AM", Clinicians: []string{"A"}},
	}

	dist := ComputeDistribution(slots, nil)

	assert.Equal(t, map[string]int{"Monday": 4}, dist.ByDay)
	assert.Equal(t, map[string]int{"morning": 1, "afternoon": 1, "evening": 1}, dist.ByTime)
}

func TestCountAvailable(t *testing.T) {
	slots := testSlots()
	assert.Equal(t, 2, CountAvailable(slots, nil))
	assert.Equal(t, 2, CountAvailable(slots, []model.BookedSlot{{SlotID: "mon-9", Clinician: "A"}}))
	assert.Equal(t, 1, CountAvailable(slots, []model.BookedSlot{
		{SlotID: "mon-9", Clinician: "A"},
		{SlotID: "mon-9", Clinician: "B"},
	}))
}

func TestCountInsuranceMatched(t *testing.T) {
	slots := testSlots()
	assert.Equal(t, 1, CountInsuranceMatched(slots, nil, "Aetna"))
	assert.Equal(t, 0, CountInsuranceMatched(slots, nil, "Blue Cross"))
	assert.Equal(t, 0, CountInsuranceMatched(slots, nil, ""))
	// The open-clinician gate applies before the insurance test.
	assert.Equal(t, 0, CountInsuranceMatched(slots, []model.BookedSlot{
		{SlotID: "mon-9", Clinician: "A"},
		{SlotID: "mon-9", Clinician: "B"},
	}, "Aetna"))
}
