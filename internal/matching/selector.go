package matching

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jwalitptl/intake-api/internal/model"
)

// SelectionMode picks one of the three selection strategies.
type SelectionMode string

const (
	SelectFull        SelectionMode = "full"
	SelectByClinician SelectionMode = "by-clinician"
	SelectByDay       SelectionMode = "by-day"
)

// Caller misconfiguration is the only reported failure class in this package;
// every other function is total over its inputs.
var (
	ErrClinicianRequired = errors.New("clinician name is required for by-clinician selection")
	ErrDaysRequired      = errors.New("day list is required for by-day selection")
	ErrUnknownMode       = errors.New("unknown selection mode")
)

// SelectionOptions configure one selection call.
type SelectionOptions struct {
	Mode      SelectionMode
	Count     int
	Clinician string   // required for SelectByClinician
	Days      []string // required for SelectByDay
	Criteria  FilterCriteria
	// Rand is the randomness source; nil gets a time-seeded one. Tests inject
	// a fixed seed here.
	Rand *rand.Rand
}

// SelectSlots dispatches to one of the three selection strategies. An empty
// filtered pool yields an empty result, and a count larger than the pool
// yields as many picks as exist; neither is an error.
func SelectSlots(slots []model.AvailabilitySlot, bookings []model.BookedSlot, opts SelectionOptions) ([]model.SelectedSlotInfo, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	idx := NewBookingIndex(bookings)

	switch opts.Mode {
	case SelectFull, "":
		pool := filterAvailable(slots, idx, opts.Criteria)
		return sampleDiverse(pool, opts.Count, rng, dayAxis(rng)), nil

	case SelectByClinician:
		if opts.Clinician == "" {
			return nil, ErrClinicianRequired
		}
		criteria := opts.Criteria
		criteria.Clinicians = []string{opts.Clinician}
		pool := filterAvailable(slots, idx, criteria)
		return sampleDiverse(pool, opts.Count, rng, dayAxis(rng)), nil

	case SelectByDay:
		if len(opts.Days) == 0 {
			return nil, ErrDaysRequired
		}
		criteria := opts.Criteria
		criteria.Days = opts.Days
		pool := filterAvailable(slots, idx, criteria)
		return sampleDiverse(pool, opts.Count, rng, clinicianAxis(rng)), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}
}

// axisPicker tries to pick one clinician from a candidate slot. In the
// diversity pass, used holds the axis keys already taken and the picker may
// decline; in the fill pass, used is nil and the picker always succeeds.
type axisPicker func(fs FilteredSlot, used map[string]struct{}) (clinician, axisKey string, ok bool)

// dayAxis prefers unseen days, picking one uniformly random open clinician
// per slot.
func dayAxis(rng *rand.Rand) axisPicker {
	return func(fs FilteredSlot, used map[string]struct{}) (string, string, bool) {
		if used != nil {
			if _, taken := used[fs.Slot.Day]; taken {
				return "", "", false
			}
		}
		name := fs.AvailableClinicians[rng.Intn(len(fs.AvailableClinicians))]
		return name, fs.Slot.Day, true
	}
}

// clinicianAxis prefers clinicians not yet picked anywhere in the selection.
func clinicianAxis(rng *rand.Rand) axisPicker {
	return func(fs FilteredSlot, used map[string]struct{}) (string, string, bool) {
		candidates := fs.AvailableClinicians
		if used != nil {
			fresh := make([]string, 0, len(candidates))
			for _, name := range candidates {
				if _, taken := used[name]; !taken {
					fresh = append(fresh, name)
				}
			}
			if len(fresh) == 0 {
				return "", "", false
			}
			candidates = fresh
		}
		name := candidates[rng.Intn(len(candidates))]
		return name, name, true
	}
}

// sampleDiverse is the two-pass sampler shared by all three modes: an
// unbiased Fisher-Yates shuffle so "first N" is a uniform sample without
// replacement, a diversity pass that takes at most one pick per axis key, and
// a fill pass that relaxes the axis constraint to honor the requested count.
// Axis repeats happen only once every fresh option is exhausted. The fill
// pass excludes slots already selected by slot ID, nothing more; that exact
// semantic is relied on by callers, so keep it when changing this function.
func sampleDiverse(pool []FilteredSlot, count int, rng *rand.Rand, pick axisPicker) []model.SelectedSlotInfo {
	selected := make([]model.SelectedSlotInfo, 0, max(count, 0))
	if count <= 0 || len(pool) == 0 {
		return selected
	}

	shuffled := make([]FilteredSlot, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	usedKeys := make(map[string]struct{})
	usedSlots := make(map[string]struct{})

	for _, fs := range shuffled {
		if len(selected) >= count {
			break
		}
		clinician, key, ok := pick(fs, usedKeys)
		if !ok {
			continue
		}
		usedKeys[key] = struct{}{}
		usedSlots[fs.Slot.ID] = struct{}{}
		selected = append(selected, newSelection(fs, clinician))
	}

	for _, fs := range shuffled {
		if len(selected) >= count {
			break
		}
		if _, taken := usedSlots[fs.Slot.ID]; taken {
			continue
		}
		clinician, _, _ := pick(fs, nil)
		usedSlots[fs.Slot.ID] = struct{}{}
		selected = append(selected, newSelection(fs, clinician))
	}

	return selected
}

func newSelection(fs FilteredSlot, clinician string) model.SelectedSlotInfo {
	return model.SelectedSlotInfo{
		SlotID:     fs.Slot.ID,
		Day:        fs.Slot.Day,
		Time:       fs.Slot.Time,
		Clinicians: []string{clinician},
	}
}
