package grid

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/matzehuels/gridpack/pkg/errors"
)

// Policy decides what [RepairOverflow] does with an overflowing item for
// which no free slot exists.
type Policy int

const (
	// PolicyDrop removes the item from the repaired layout.
	PolicyDrop Policy = iota
	// PolicyKeep leaves the item where it was, still overflowing.
	PolicyKeep
)

// String returns the policy name used in flags and config files.
func (p Policy) String() string {
	switch p {
	case PolicyDrop:
		return "drop"
	case PolicyKeep:
		return "keep"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "drop" or "keep". The empty string means drop.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return PolicyDrop, nil
	case "keep":
		return PolicyKeep, nil
	}
	return PolicyDrop, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid unplaceable policy: %q (must be one of: drop, keep)", s)
}

// Report summarises a repair pass. Entries are indices into the input layout.
type Report struct {
	Moved   []int `json:"moved,omitempty"`
	Dropped []int `json:"dropped,omitempty"`
	Kept    []int `json:"kept,omitempty"`
}

// Changed reports whether the pass altered the layout.
func (r Report) Changed() bool {
	return len(r.Moved) > 0 || len(r.Dropped) > 0
}

type repairConfig struct {
	policy Policy
}

// RepairOption configures [RepairOverflow].
type RepairOption func(*repairConfig)

// WithUnplaceable sets the policy for overflowing items that fit nowhere.
// The default is [PolicyDrop].
func WithUnplaceable(p Policy) RepairOption {
	return func(c *repairConfig) { c.policy = p }
}

// RepairOverflow relocates every item of l that exceeds d.
//
// Items are processed in layout order against a working copy, so earlier
// relocations constrain later ones. A relocated item keeps its size and
// payload and moves to the end of the sequence. Items that fit are left
// untouched in their original order. The input layout is never modified.
func RepairOverflow[T any](d Dimensions, l Layout[T], opts ...RepairOption) (Layout[T], Report, error) {
	var cfg repairConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var report Report
	work := l.Clone()
	origin := make([]int, len(l)) // origin[k] is the input index of work[k]
	for i := range origin {
		origin[i] = i
	}

	for i, it := range l {
		if !it.Rect().Overflows(d) {
			continue
		}
		k := slices.Index(origin, i)
		work = slices.Delete(work, k, k+1)
		origin = slices.Delete(origin, k, k+1)

		slot, err := FindSlot(d, work, it.Size)
		if err != nil {
			return nil, Report{}, err
		}
		if pos, ok := slot.Get(); ok {
			work = append(work, it.MovedTo(pos))
			origin = append(origin, i)
			report.Moved = append(report.Moved, i)
			continue
		}

		switch cfg.policy {
		case PolicyKeep:
			work = slices.Insert(work, k, it)
			origin = slices.Insert(origin, k, i)
			report.Kept = append(report.Kept, i)
		default:
			report.Dropped = append(report.Dropped, i)
		}
	}
	return work, report, nil
}
