package tickets

import (
	"strings"
	"testing"
)

func TestPassPayloadRoundTrip(t *testing.T) {
	payload := PassPayload("e1", "CODE123")

	eventID, code, err := VerifyPassPayload(payload)
	if err != nil {
		t.Fatalf("VerifyPassPayload: %v", err)
	}
	if eventID != "e1" || code != "CODE123" {
		t.Fatalf("got %q/%q", eventID, code)
	}
}

func TestPassPayloadRejectsTampering(t *testing.T) {
	payload := PassPayload("e1", "CODE123")
	forged := strings.Replace(payload, "e1", "e2", 1)

	if _, _, err := VerifyPassPayload(forged); err == nil {
		t.Fatal("tampered payload must not verify")
	}
	if _, _, err := VerifyPassPayload("not|a-pass"); err == nil {
		t.Fatal("malformed payload must not verify")
	}
}
