package pay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func sign(secret []byte, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestHMACVerifierAcceptsValidSignature(t *testing.T) {
	v := &HMACVerifier{Secret: []byte("test-secret")}
	sig := sign(v.Secret, "ord1", "pay1")

	if err := v.Verify("ord1", "pay1", sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestHMACVerifierRejectsTamperedSignature(t *testing.T) {
	v := &HMACVerifier{Secret: []byte("test-secret")}
	sig := sign(v.Secret, "ord1", "pay1")

	if err := v.Verify("ord2", "pay1", sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("Verify with wrong order = %v, want ErrBadSignature", err)
	}
	if err := v.Verify("ord1", "pay1", "garbage"); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("Verify with garbage = %v, want ErrBadSignature", err)
	}
}

func TestHMACVerifierSecretMatters(t *testing.T) {
	right := &HMACVerifier{Secret: []byte("right")}
	wrong := &HMACVerifier{Secret: []byte("wrong")}
	sig := sign(right.Secret, "ord1", "pay1")

	if err := wrong.Verify("ord1", "pay1", sig); err == nil {
		t.Fatal("signature from another secret must not verify")
	}
}
