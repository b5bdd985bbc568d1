package refine

import "strings"

// Equals matches rows whose field equals want.
func Equals[T any, V comparable](field func(T) V, want V) Predicate[T] {
	return func(row T) bool { return field(row) == want }
}

// ContainsFold matches rows whose field contains sub, ignoring case.
func ContainsFold[T any](field func(T) string, sub string) Predicate[T] {
	sub = strings.ToLower(strings.TrimSpace(sub))
	return func(row T) bool {
		return strings.Contains(strings.ToLower(field(row)), sub)
	}
}
