package testutil

import "testing"

// Given, When and Then nest subtests so a flow test reads as its scenario:
// "Given <state>/When <action>/Then <outcome>".
func Given(t *testing.T, state string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", state, fn)
}

func When(t *testing.T, action string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", action, fn)
}

func Then(t *testing.T, outcome string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", outcome, fn)
}

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(keyword+" "+desc, fn)
}
