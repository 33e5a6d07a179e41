// Package grades provides the grade set type used by drive scheduling.
// Drives persist their applicable grades as a comma separated string; this
// package owns parsing and formatting at that boundary so the rest of the
// application only ever works with a normalized Set.
package grades

import (
	"sort"
	"strconv"
	"strings"
)

// Separator used in the persisted applicable_grades column.
const Separator = ","

// Standard returns the school grade labels in teaching order.
func Standard() []string {
	labels := make([]string, 0, 12)
	for grade := 1; grade <= 12; grade++ {
		labels = append(labels, strconv.Itoa(grade))
	}
	return labels
}

// Set is an ordered set of grade labels ("1".."12"). Labels are kept as
// strings because the source data allows non-numeric sections, but numeric
// labels sort numerically.
type Set struct {
	labels []string
	index  map[string]struct{}
}

// ParseSet builds a Set from a delimited grade list such as "5, 6,7".
// Labels are trimmed, empty entries dropped and duplicates collapsed.
func ParseSet(raw string) Set {
	parts := strings.Split(raw, Separator)
	set := Set{index: make(map[string]struct{}, len(parts))}
	for _, part := range parts {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		if _, ok := set.index[label]; ok {
			continue
		}
		set.index[label] = struct{}{}
		set.labels = append(set.labels, label)
	}
	sort.Slice(set.labels, func(i, j int) bool {
		return lessGrade(set.labels[i], set.labels[j])
	})
	return set
}

// NewSet builds a Set from individual labels.
func NewSet(labels ...string) Set {
	return ParseSet(strings.Join(labels, Separator))
}

// Less orders numeric labels numerically and falls back to a plain
// string comparison for anything else.
func Less(a, b string) bool {
	return lessGrade(a, b)
}

// lessGrade orders numeric labels numerically and falls back to a plain
// string comparison for anything else.
func lessGrade(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}

// Contains reports whether the set holds the given grade label.
func (s Set) Contains(label string) bool {
	_, ok := s.index[strings.TrimSpace(label)]
	return ok
}

// Intersects reports whether the two sets share at least one grade.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(large.index) < len(small.index) {
		small, large = large, small
	}
	for label := range small.index {
		if _, ok := large.index[label]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of grades in the set.
func (s Set) Len() int {
	return len(s.labels)
}

// IsEmpty reports whether the set holds no grades.
func (s Set) IsEmpty() bool {
	return len(s.labels) == 0
}

// Labels returns the sorted grade labels. The returned slice is a copy.
func (s Set) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// String formats the set back into the persisted representation.
func (s Set) String() string {
	return strings.Join(s.labels, Separator)
}
