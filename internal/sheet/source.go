package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/intake-api/internal/model"
)

const slotsCacheKey = "slots"

// Source reads availability slots from the practice's published spreadsheet,
// exported as CSV. Fetches are cached briefly so repeated views don't hammer
// the sheet; bookings are always read fresh by callers, so the engine's
// snapshot-consistency contract stays with them.
type Source struct {
	url    string
	client *http.Client
	cache  *cache.Cache
}

func NewSource(csvURL string, ttl time.Duration) *Source {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Source{
		url:    csvURL,
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  cache.New(ttl, 2*ttl),
	}
}

// Slots returns the current availability snapshot.
func (s *Source) Slots(ctx context.Context) ([]model.AvailabilitySlot, error) {
	if cached, ok := s.cache.Get(slotsCacheKey); ok {
		return cached.([]model.AvailabilitySlot), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability sheet returned status %d", resp.StatusCode)
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse availability sheet: %w", err)
	}

	slots := parseRecords(records)
	s.cache.SetDefault(slotsCacheKey, slots)
	return slots, nil
}

// parseRecords maps CSV rows (day, time, clinicians, insurance) to slots.
// A header row is detected by its first cell and skipped. Rows without a day,
// time, or any clinician are dropped rather than failing the whole fetch.
func parseRecords(records [][]string) []model.AvailabilitySlot {
	slots := make([]model.AvailabilitySlot, 0, len(records))
	for i, rec := range records {
		if len(rec) < 3 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "day") {
			continue
		}

		day := strings.TrimSpace(rec[0])
		timeLabel := strings.TrimSpace(rec[1])
		if day == "" || timeLabel == "" {
			continue
		}

		var clinicians []string
		for _, name := range strings.Split(rec[2], ",") {
			if name = strings.TrimSpace(name); name != "" {
				clinicians = append(clinicians, name)
			}
		}
		if len(clinicians) == 0 {
			continue
		}

		insurance := ""
		if len(rec) > 3 {
			insurance = strings.TrimSpace(rec[3])
		}

		slots = append(slots, model.AvailabilitySlot{
			ID:         model.SlotID(day, timeLabel),
			Day:        day,
			Time:       timeLabel,
			Clinicians: clinicians,
			Insurance:  insurance,
		})
	}
	return slots
}
