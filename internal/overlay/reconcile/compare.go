package reconcile

// Comparator reports whether two visited-country lists are the same.
type Comparator func(a, b []string) bool

// OrderedEqual compares length and then element by element. Two lists with the
// same countries in a different order are reported as different.
func OrderedEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SetEqual compares lists as sets, ignoring order and duplicates.
func SetEqual(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, c := range a {
		as[c] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, c := range b {
		if _, ok := as[c]; !ok {
			return false
		}
		bs[c] = struct{}{}
	}
	return len(as) == len(bs)
}
