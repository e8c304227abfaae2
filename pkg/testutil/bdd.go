package testutil

import "testing"

// Given, When, and Then wrap t.Run with narrated names so a verbose run of a
// multi-step scenario reads as prose. They are plain subtest wrappers, not a
// BDD framework; steps run in order and share the enclosing test's state.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}
