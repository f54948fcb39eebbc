// Package tickets renders a confirmed registration as a scannable pass:
// a QR code for the door and a printable PDF. Check-in verifies the scanned
// payload and records attendance.
package tickets

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"gatherly/globals"
)

// qrSecret signs pass payloads so a scanned code cannot be forged.
var qrSecret = []byte(globals.Getenv("PASS_SECRET", "change_me_pass_secret"))

// PassPayload builds the signed payload encoded into the QR code:
// eventID|uniqueCode|signature.
func PassPayload(eventID, uniqueCode string) string {
	data := fmt.Sprintf("%s|%s", eventID, uniqueCode)
	h := hmac.New(sha256.New, qrSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyPassPayload checks a scanned payload and returns its parts.
func VerifyPassPayload(payload string) (eventID, uniqueCode string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return "", "", errors.New("invalid QR format")
	}
	eventID, uniqueCode, signature := parts[0], parts[1], parts[2]

	data := fmt.Sprintf("%s|%s", eventID, uniqueCode)
	h := hmac.New(sha256.New, qrSecret)
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", "", errors.New("invalid signature")
	}
	return eventID, uniqueCode, nil
}
