package model

import "strings"

// Requirements is the ordered requirement list of a position.
type Requirements []string

// Add appends the trimmed requirement unless it is blank or already present
// (exact, case-sensitive match). It reports whether the list changed.
func (r *Requirements) Add(requirement string) bool {
	requirement = strings.TrimSpace(requirement)
	if requirement == "" || contains(*r, requirement) {
		return false
	}

	*r = append(*r, requirement)

	return true
}

// Remove drops the item at index i, keeping the order of the rest.
// Out-of-range indexes are ignored.
func (r *Requirements) Remove(i int) bool {
	if i < 0 || i >= len(*r) {
		return false
	}

	out := make(Requirements, 0, len(*r)-1)
	out = append(out, (*r)[:i]...)
	out = append(out, (*r)[i+1:]...)
	*r = out

	return true
}
