package model

import (
	"time"

	"github.com/shiftsat/shiftsat/pkg/model/tag"
)

// PreferenceKind tags the variant held by a Preference value.
type PreferenceKind int

const (
	// PreferenceSpecificTOD scores 1.0 iff the shift is contained in one
	// of the listed time-of-day windows, else 0.0.
	PreferenceSpecificTOD PreferenceKind = iota
	// PreferenceRelativeTOD returns the normalized bucket weight
	// (morning/afternoon/evening/night) of the shift's start time.
	PreferenceRelativeTOD
	// PreferenceMixin evaluates a named predicate from the Tag Library.
	PreferenceMixin
	// PreferenceAverage is the arithmetic mean of its children's scores.
	PreferenceAverage
	// PreferenceMax is the maximum of its children's scores, scaled by Gain.
	PreferenceMax
)

// Preference is a tagged-variant scoring tree: given a candidate shift it
// returns a real-valued score via Score. Composition (Average, Max) holds
// a slice of children of this same type, per Design Notes §9 — this
// replaces the source's subclassing/list-inheritance approach with a flat
// sum type and an explicit Score method, with no runtime dispatch through
// an interface hierarchy.
type Preference struct {
	Kind PreferenceKind

	// PreferenceSpecificTOD
	Windows []Timespan

	// PreferenceRelativeTOD — normalized weights summing to 1.0.
	MorningWeight   float64
	AfternoonWeight float64
	EveningWeight   float64
	NightWeight     float64

	// PreferenceMixin
	TagName string

	// PreferenceAverage / PreferenceMax
	Children []Preference
	Gain     float64 // PreferenceMax only; 0 treated as 1.0 (no scaling)
}

// NewSpecificTOD builds a SpecificTOD preference over the given time-of-day
// windows.
func NewSpecificTOD(windows []Timespan) Preference {
	return Preference{Kind: PreferenceSpecificTOD, Windows: windows}
}

// NewRelativeTOD builds a RelativeTOD preference, normalizing the four
// counts into a probability distribution. If all counts are zero, the
// distribution is uniform across the four buckets (matching the source's
// behavior of defaulting each bucket to an equal share when no counts are
// given, generalized here to four buckets instead of three — see
// SPEC_FULL.md §4 on the night bucket).
func NewRelativeTOD(morning, afternoon, evening, night int) Preference {
	total := morning + afternoon + evening + night
	if total == 0 {
		return Preference{
			Kind:            PreferenceRelativeTOD,
			MorningWeight:   0.25,
			AfternoonWeight: 0.25,
			EveningWeight:   0.25,
			NightWeight:     0.25,
		}
	}
	f := float64(total)
	return Preference{
		Kind:            PreferenceRelativeTOD,
		MorningWeight:   float64(morning) / f,
		AfternoonWeight: float64(afternoon) / f,
		EveningWeight:   float64(evening) / f,
		NightWeight:     float64(night) / f,
	}
}

// NewMixin builds a Mixin preference referencing a named tag. The tag must
// exist in the Tag Library; construction does not validate this (callers —
// the parser — are responsible for validating tag names up front and
// dropping unrecognized ones with a diagnostic, per spec.md §4.4).
func NewMixin(tagName string) Preference {
	return Preference{Kind: PreferenceMixin, TagName: tagName}
}

// NewAverage builds an Average preference over children.
func NewAverage(children ...Preference) Preference {
	return Preference{Kind: PreferenceAverage, Children: children}
}

// NewMax builds a Max preference over children, scaled by gain (0 means no
// scaling, i.e. gain 1.0).
func NewMax(gain float64, children ...Preference) Preference {
	return Preference{Kind: PreferenceMax, Children: children, Gain: gain}
}

// Score computes this preference's value for the given candidate shift.
// Scoring is pure: no IO, no randomness.
func (p Preference) Score(shift Timespan) float64 {
	switch p.Kind {
	case PreferenceSpecificTOD:
		for _, w := range p.Windows {
			if w.Contains(mustStripDate(shift)) {
				return 1.0
			}
		}
		return 0.0

	case PreferenceRelativeTOD:
		h, m, _ := shift.Start.Clock()
		start := time.Date(0, 1, 1, h, m, 0, 0, time.UTC)
		switch {
		case start.Before(time.Date(0, 1, 1, 12, 0, 0, 0, time.UTC)):
			return p.MorningWeight
		case start.Before(time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC)):
			return p.AfternoonWeight
		case start.Before(time.Date(0, 1, 1, 20, 0, 0, 0, time.UTC)):
			return p.EveningWeight
		default:
			return p.NightWeight
		}

	case PreferenceMixin:
		pred, ok := tag.Lookup(p.TagName)
		if !ok {
			return 0.0
		}
		if pred(shiftFromTimespan(shift)) {
			return 1.0
		}
		return 0.0

	case PreferenceAverage:
		if len(p.Children) == 0 {
			return 0.0
		}
		total := 0.0
		for _, c := range p.Children {
			total += c.Score(shift)
		}
		return total / float64(len(p.Children))

	case PreferenceMax:
		gain := p.Gain
		if gain == 0 {
			gain = 1.0
		}
		if len(p.Children) == 0 {
			return 0.0
		}
		best := p.Children[0].Score(shift)
		for _, c := range p.Children[1:] {
			if s := c.Score(shift); s > best {
				best = s
			}
		}
		return best * gain

	default:
		return 0.0
	}
}

func mustStripDate(t Timespan) Timespan {
	s, err := t.StripDate()
	if err != nil {
		return t
	}
	return s
}

func shiftFromTimespan(t Timespan) tag.Shift {
	return tag.Shift{Start: t.Start, End: t.End, Weekday: t.Weekday()}
}
