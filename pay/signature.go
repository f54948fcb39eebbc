package pay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"gatherly/globals"
)

var ErrBadSignature = errors.New("payment signature verification failed")

// SignatureVerifier checks a gateway payment signature. The production
// implementation is HMAC-based; tests inject a fake.
type SignatureVerifier interface {
	Verify(orderID, paymentID, signature string) error
}

// HMACVerifier implements the Razorpay signing scheme: hex-encoded
// HMAC-SHA256 over "orderID|paymentID" with the gateway secret.
type HMACVerifier struct {
	Secret []byte
}

func NewHMACVerifier() *HMACVerifier {
	return &HMACVerifier{Secret: []byte(globals.Getenv("PAYMENT_SECRET", "rzp_test_secret"))}
}

func (v *HMACVerifier) Verify(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, v.Secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}
