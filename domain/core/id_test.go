package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id == "" {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestDomainIDsAreDistinct tests that typed IDs are fresh per call
func TestDomainIDsAreDistinct(t *testing.T) {
	if NewDatasetID() == NewDatasetID() {
		t.Error("Expected distinct dataset IDs")
	}
	if NewSessionID() == NewSessionID() {
		t.Error("Expected distinct session IDs")
	}
}

// TestSelectionErrorsWrapSentinel tests that selection errors match ErrInvalidSelection
func TestSelectionErrorsWrapSentinel(t *testing.T) {
	for _, err := range []error{ErrUnknownField, ErrRoleMismatch, ErrSlotOutOfRange} {
		if !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("Expected %v to wrap ErrInvalidSelection", err)
		}
		if !IsSelectionError(NewSelectionError(err, "detail")) {
			t.Errorf("Expected wrapped %v to be a selection error", err)
		}
	}

	if IsSelectionError(ErrInsufficientData) {
		t.Error("ErrInsufficientData must not be a selection error")
	}
}

// TestComputeFingerprintOrder tests that part order changes the fingerprint
func TestComputeFingerprintOrder(t *testing.T) {
	a := ComputeFingerprint("x", "y")
	b := ComputeFingerprint("y", "x")
	if a == b {
		t.Error("Expected different fingerprints for different part order")
	}
	if a != ComputeFingerprint("x", "y") {
		t.Error("Expected fingerprint to be deterministic")
	}
}
