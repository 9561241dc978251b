// Package domain contains the farm assessment scorers: the six-question risk checker,
// the biosecurity checklist, vaccination coverage and compliance checklist completion.
// Everything here is pure and deterministic.
package domain

import (
	"math"
	"sort"

	"github.com/farmrakshaa/farm-guardian/internal/errors"
)

// Scoring errors.
var (
	// ErrUnknownQuestion indicates an answer keyed by an id outside the question set.
	ErrUnknownQuestion = errors.Wrap(errors.ErrInvalidInput, "unknown question")

	// ErrScoreOutOfRange indicates an answer outside the question's score domain.
	ErrScoreOutOfRange = errors.Wrap(errors.ErrInvalidInput, "score out of range")
)

// QuestionSet is an ordered, closed set of question ids sharing one score domain
// [Min, Max]. Unanswered questions count as zero but still add Max to the denominator.
type QuestionSet[Q ~string] struct {
	Questions []Q
	Min       int
	Max       int
}

// Contains reports whether q belongs to the set.
func (s QuestionSet[Q]) Contains(q Q) bool {
	for _, candidate := range s.Questions {
		if candidate == q {
			return true
		}
	}
	return false
}

// Parse turns loosely keyed answers into typed ones. Unknown ids and scores outside
// [Min, Max] are rejected; keys are checked in sorted order so the error is stable.
func (s QuestionSet[Q]) Parse(raw map[string]int) (map[Q]int, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	answers := make(map[Q]int, len(raw))
	for _, k := range keys {
		q := Q(k)
		if !s.Contains(q) {
			return nil, errors.Wrapf(ErrUnknownQuestion, "%q", k)
		}
		v := raw[k]
		if v < s.Min || v > s.Max {
			return nil, errors.Wrapf(ErrScoreOutOfRange, "%s=%d (allowed %d..%d)", k, v, s.Min, s.Max)
		}
		answers[q] = v
	}
	return answers, nil
}

// MaxScore is the highest possible raw score over the whole set.
func (s QuestionSet[Q]) MaxScore() int {
	return len(s.Questions) * s.Max
}

// Sum adds the answers for questions in the set.
func (s QuestionSet[Q]) Sum(answers map[Q]int) int {
	total := 0
	for _, q := range s.Questions {
		total += answers[q]
	}
	return total
}

// Percentage is 100*raw/max, clamped to [0, 100]. A zero max yields 0.
func Percentage(raw, max int) float64 {
	if max <= 0 {
		return 0
	}
	p := 100 * float64(raw) / float64(max)
	return math.Max(0, math.Min(100, p))
}

// Round rounds half away from zero, which matches the display rounding for
// non-negative percentages.
func Round(p float64) int {
	return int(math.Round(p))
}
