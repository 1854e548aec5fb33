// Package test contains helper functions to remove common boilerplate from
// package tests.
package test

import "testing"

// ExpectEquality is used to test equality between one value and another
func ExpectEquality[T comparable](t *testing.T, value T, expected T) {
	t.Helper()
	if value != expected {
		t.Errorf("equality test of type %T failed: '%v' does not equal '%v'", value, value, expected)
	}
}

// ExpectInequality is used to test inequality between one value and another
func ExpectInequality[T comparable](t *testing.T, value T, expected T) {
	t.Helper()
	if value == expected {
		t.Errorf("inequality test of type %T failed: '%v' does equal '%v'", value, value, expected)
	}
}

// ExpectSuccess tests a bool or error value for "success". For errors, success
// means the value is nil
func ExpectSuccess(t *testing.T, value any) {
	t.Helper()
	switch v := value.(type) {
	case bool:
		if !v {
			t.Errorf("expected success (bool)")
		}
	case error:
		if v != nil {
			t.Errorf("expected success (error): %v", v)
		}
	case nil:
	default:
		t.Fatalf("unsupported type (%T) for ExpectSuccess", value)
	}
}

// ExpectFailure tests a bool or error value for "failure". For errors, failure
// means the value is not nil
func ExpectFailure(t *testing.T, value any) {
	t.Helper()
	switch v := value.(type) {
	case bool:
		if v {
			t.Errorf("expected failure (bool)")
		}
	case error:
		if v == nil {
			t.Errorf("expected failure (error)")
		}
	case nil:
		t.Errorf("expected failure (nil)")
	default:
		t.Fatalf("unsupported type (%T) for ExpectFailure", value)
	}
}
