package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/intake-api/internal/model"
)

func filterFixture() []model.AvailabilitySlot {
	return []model.AvailabilitySlot{
		{ID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"A", "B"}, Insurance: "Aetna"},
		{ID: "mon-1", Day: "Monday", Time: "1:00 PM", Clinicians: []string{"B"}, Insurance: "Blue Cross Blue Shield"},
		{ID: "tue-10", Day: "Tuesday", Time: "10:00 AM", Clinicians: []string{"A"}, Insurance: ""},
		{ID: "wed-6", Day: "Wednesday", Time: "6:00 PM", Clinicians: []string{"C"}, Insurance: "Cigna"},
	}
}

func filteredIDs(fs []FilteredSlot) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Slot.ID
	}
	return out
}

func TestFilterSlots_NoCriteria(t *testing.T) {
	got := FilterSlots(filterFixture(), nil, FilterCriteria{})
	assert.Equal(t, []string{"mon-9", "mon-1", "tue-10", "wed-6"}, filteredIDs(got))
}

func TestFilterSlots_DayMembership(t *testing.T) {
	got := FilterSlots(filterFixture(), nil, FilterCriteria{Days: []string{"Monday"}})
	assert.Equal(t, []string{"mon-9", "mon-1"}, filteredIDs(got))
}

func TestFilterSlots_TimeRange(t *testing.T) {
	got := FilterSlots(filterFixture(), nil, FilterCriteria{TimeRange: TimeRangeMorning})
	assert.Equal(t, []string{"mon-9", "tue-10"}, filteredIDs(got))
}

func TestFilterSlots_ExactTimeBeatsTimeRange(t *testing.T) {
	got := FilterSlots(filterFixture(), nil, FilterCriteria{
		ExactTime: "6:00 PM",
		TimeRange: TimeRangeMorning,
	})
	assert.Equal(t, []string{"wed-6"}, filteredIDs(got))
}

func TestFilterSlots_InsuranceMatch(t *testing.T) {
	got := FilterSlots(filterFixture(), nil, FilterCriteria{
		RequireInsuranceMatch: true,
		ClientInsurance:       "Blue Cross",
	})
	assert.Equal(t, []string{"mon-1"}, filteredIDs(got))
}

func TestFilterSlots_ExcludesOfferedSlots(t *testing.T) {
	got := FilterSlots(filterFixture(), nil, FilterCriteria{
		ExcludeSlotIDs: []string{"mon-9", "wed-6"},
	})
	assert.Equal(t, []string{"mon-1", "tue-10"}, filteredIDs(got))
}

func TestFilterSlots_ClinicianAllowlistCaseInsensitive(t *testing.T) {
	got := FilterSlots(filterFixture(), nil, FilterCriteria{Clinicians: []string{"a"}})
	require.Equal(t, []string{"mon-9", "tue-10"}, filteredIDs(got))
	assert.Equal(t, []string{"A"}, got[0].AvailableClinicians)
}

func TestFilterSlots_BookingSubtraction(t *testing.T) {
	bookings := []model.BookedSlot{
		{SlotID: "mon-9", Clinician: "A"},
		{SlotID: "tue-10", Clinician: "A"},
	}
	got := FilterSlots(filterFixture(), bookings, FilterCriteria{})
	require.Equal(t, []string{"mon-9", "mon-1", "wed-6"}, filteredIDs(got))
	assert.Equal(t, []string{"B"}, got[0].AvailableClinicians)
}

func TestFilterSlots_CombinedCriteria(t *testing.T) {
	got := FilterSlots(filterFixture(), nil, FilterCriteria{
		Days:      []string{"Monday", "Tuesday"},
		TimeRange: TimeRangeAfternoon,
	})
	assert.Equal(t, []string{"mon-1"}, filteredIDs(got))
}

func TestFilterSlots_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterSlots(nil, nil, FilterCriteria{}))
}
