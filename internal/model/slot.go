package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is one advertised (day, time) appointment opportunity as
// published by the practice. A slot with multiple clinicians represents several
// independent booking opportunities at the same day/time.
type AvailabilitySlot struct {
	ID         string   `json:"id"`
	Day        string   `json:"day"`
	Time       string   `json:"time"`
	Clinicians []string `json:"clinicians"`
	Insurance  string   `json:"insurance"`
}

// SlotID derives a slot identifier from its day and time label. The derivation
// is deterministic so that re-fetching the same source data yields the same IDs.
func SlotID(day, timeLabel string) string {
	norm := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		return strings.NewReplacer(" ", "-", ":", "").Replace(s)
	}
	return norm(day) + "-" + norm(timeLabel)
}

// BookedSlot identifies exactly which clinician's instance of a slot is taken.
type BookedSlot struct {
	SlotID    string `json:"slot_id" db:"slot_id"`
	Clinician string `json:"clinician" db:"clinician"`
}

// OfferedSlot records that a slot was offered to a client in an outreach email,
// so later selections can exclude it.
type OfferedSlot struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	SlotID    string    `json:"slot_id" db:"slot_id"`
	Clinician string    `json:"clinician" db:"clinician"`
	Day       string    `json:"day" db:"day"`
	Time      string    `json:"time" db:"time"`
	OfferedAt time.Time `json:"offered_at" db:"offered_at"`
}
