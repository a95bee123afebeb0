package models

import "testing"

func TestSuccessMessage(t *testing.T) {
	got := SuccessMessage("hand soap", "$4.99")
	want := "Success!\nHere are the prices for hand soap: $4.99"
	if got != want {
		t.Errorf("SuccessMessage = %q, want %q", got, want)
	}
}

func TestFailureMessage(t *testing.T) {
	got := FailureMessage("hand soap")
	want := "Failed to Search for hand soap"
	if got != want {
		t.Errorf("FailureMessage = %q, want %q", got, want)
	}
}

func TestSuccessMessage_PriceVerbatim(t *testing.T) {
	// The price is whatever the page displayed, reported byte-for-byte.
	got := SuccessMessage("hand soap", " €3,49 ")
	want := "Success!\nHere are the prices for hand soap:  €3,49 "
	if got != want {
		t.Errorf("SuccessMessage = %q, want %q", got, want)
	}
}
