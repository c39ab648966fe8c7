package scoring

import (
	"fmt"

	"github.com/codebreakerd260/SIH2k25-Prod/storage"
)

const maxCriterionValue = 10

// ValidateCriteria checks every mentor scoring dimension against the [0,10]
// bound. The error names the offending field so the client can surface it.
func ValidateCriteria(c storage.ScoreCriteria) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"innovation", c.Innovation},
		{"feasibility", c.Feasibility},
		{"technical", c.Technical},
		{"presentation", c.Presentation},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > maxCriterionValue {
			return fmt.Errorf("%s must be between 0 and %d", f.name, maxCriterionValue)
		}
	}
	return nil
}

// CriteriaTotal is the sum of the four dimensions, in [0,40] for valid input.
func CriteriaTotal(c storage.ScoreCriteria) float64 {
	return c.Innovation + c.Feasibility + c.Technical + c.Presentation
}

// UpsertMentorEntry replaces the entry with the same mentor id in place, or
// appends when the mentor has not scored this (team, round) yet. A mentor
// re-submitting never grows the collection.
func UpsertMentorEntry(entries []storage.MentorScore, entry storage.MentorScore) []storage.MentorScore {
	for i := range entries {
		if entries[i].MentorID == entry.MentorID {
			entries[i] = entry
			return entries
		}
	}
	return append(entries, entry)
}

// AverageTotal is the arithmetic mean of the entry totals, 0 when empty.
// Callers must invoke it after every mentorScores mutation and before the
// document is persisted, so AverageScore never drifts from its source.
func AverageTotal(entries []storage.MentorScore) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Total
	}
	return sum / float64(len(entries))
}
