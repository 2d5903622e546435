package profile

import (
	"strings"
	"testing"
)

func TestReceiptQRPayloadRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	payload := ReceiptQRPayload(secret, "a123", "d456", "20_1_2025", "10:00 AM")

	if !strings.HasPrefix(payload, "a123|d456|20_1_2025|10:00 AM|") {
		t.Fatalf("unexpected payload shape: %s", payload)
	}
	if !VerifyReceiptQRPayload(secret, payload) {
		t.Fatal("freshly signed payload failed verification")
	}
}

func TestReceiptQRPayloadRejectsTampering(t *testing.T) {
	secret := []byte("test-secret")
	payload := ReceiptQRPayload(secret, "a123", "d456", "20_1_2025", "10:00 AM")

	tampered := strings.Replace(payload, "10:00 AM", "8:30 PM", 1)
	if VerifyReceiptQRPayload(secret, tampered) {
		t.Fatal("tampered payload passed verification")
	}

	if VerifyReceiptQRPayload([]byte("other-secret"), payload) {
		t.Fatal("payload verified under the wrong secret")
	}

	if VerifyReceiptQRPayload(secret, "no-pipes-here") {
		t.Fatal("malformed payload passed verification")
	}
}
