// Package reconcile turns a device's cumulative counter history into daily
// page deltas. It is pure computation over already-persisted facts; the only
// failure mode is a malformed range.
package reconcile

import (
	"sort"

	"github.com/copystack/printledger/internal/day"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
)

// Delta is the derived page count for one present day.
type Delta struct {
	Date  day.Date
	Pages int64
	// Reset marks a counter decrease (hardware reset or rollover). The
	// delta is clamped to 0; the flag keeps the event distinguishable
	// from an ordinary zero-activity day.
	Reset bool
}

// Deltas folds readings into per-day increments over [from, to].
//
// The readings must belong to one device and should include history before
// `from`: the most recent earlier reading seeds the baseline for the first
// in-range day. The first reading ever encountered contributes no delta.
// Days without a reading are absent from the output; a multi-day gap puts
// the whole accumulated delta on the next present day. Counter decreases
// clamp to 0 so a delta is never negative.
func Deltas(readings []readingdomain.Reading, from, to day.Date) ([]Delta, error) {
	if err := day.ValidateRange(from, to); err != nil {
		return nil, err
	}

	ordered := make([]readingdomain.Reading, len(readings))
	copy(ordered, readings)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	var (
		out      []Delta
		baseline int64
		seeded   bool
	)
	for _, r := range ordered {
		if r.Date.After(to) {
			break
		}
		if !seeded {
			baseline = r.Counter
			seeded = true
			continue
		}

		pages := r.Counter - baseline
		reset := pages < 0
		if reset {
			pages = 0
		}
		baseline = r.Counter

		if r.Date < from {
			continue
		}
		out = append(out, Delta{Date: r.Date, Pages: pages, Reset: reset})
	}

	return out, nil
}

// Sum adds up the pages of a delta sequence.
func Sum(deltas []Delta) int64 {
	var total int64
	for _, d := range deltas {
		total += d.Pages
	}
	return total
}
