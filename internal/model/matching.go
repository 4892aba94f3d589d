package model

import "time"

// ClinicianStats is a per-clinician rollup derived from one (slots, bookings)
// snapshot. TotalSlots always equals AvailableSlots + BookedSlots.
type ClinicianStats struct {
	Name                   string   `json:"name"`
	TotalSlots             int      `json:"total_slots"`
	AvailableSlots         int      `json:"available_slots"`
	BookedSlots            int      `json:"booked_slots"`
	Insurances             []string `json:"insurances"`
	Days                   []string `json:"days"`
	IsRequestedClinician   bool     `json:"is_requested_clinician"`
	MatchesClientInsurance bool     `json:"matches_client_insurance"`
}

// SlotDistribution holds histograms over slots that still have at least one
// open clinician-instance.
type SlotDistribution struct {
	ByDay       map[string]int `json:"by_day"`
	ByTime      map[string]int `json:"by_time"`
	ByClinician map[string]int `json:"by_clinician"`
}

// SelectedSlotInfo is one candidate slot chosen for an outreach offer, carrying
// the clinician name(s) attached to that selection. AppointmentStart is
// optional metadata supplied by the caller, not computed by the engine.
type SelectedSlotInfo struct {
	SlotID           string     `json:"slot_id"`
	Day              string     `json:"day"`
	Time             string     `json:"time"`
	Clinicians       []string   `json:"clinicians"`
	AppointmentStart *time.Time `json:"appointment_start,omitempty"`
}
