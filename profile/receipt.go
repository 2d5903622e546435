package profile

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"medibook/booking"
	"medibook/db"
	"medibook/models"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("change_me_in_production")
}

// ReceiptQRPayload builds the check-in payload embedded in the receipt QR:
// appointmentId|docId|slotDate|slotTime|signature.
func ReceiptQRPayload(secret []byte, appointmentID, docID, slotDate, slotTime string) string {
	data := fmt.Sprintf("%s|%s|%s|%s", appointmentID, docID, slotDate, slotTime)

	h := hmac.New(sha256.New, secret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyReceiptQRPayload checks the signature on a scanned payload.
func VerifyReceiptQRPayload(secret []byte, payload string) bool {
	i := lastPipe(payload)
	if i < 0 {
		return false
	}
	data, sig := payload[:i], payload[i+1:]

	h := hmac.New(sha256.New, secret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(sig), []byte(want))
}

func lastPipe(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '|' {
			return i
		}
	}
	return -1
}

// PrintReceipt renders the user's appointment confirmation as a PDF with a
// signed QR code for front-desk check-in.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	appointmentID := ps.ByName("appointmentId")

	var appt models.Appointment
	err := db.AppointmentCollection.FindOne(ctx, bson.M{
		"appointmentid": appointmentID,
		"userid":        userID,
	}).Decode(&appt)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if appt.Cancelled {
		utils.RespondWithError(w, http.StatusConflict, "Appointment is cancelled")
		return
	}

	qrPayload := ReceiptQRPayload(receiptSecret(), appt.AppointmentID, appt.DocID, appt.SlotDate, appt.SlotTime)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	slotDay, err := booking.ParseDateKey(appt.SlotDate)
	displayDate := appt.SlotDate
	if err == nil {
		displayDate = slotDay.Format("2 January 2006")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Appointment Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Appointment: %s", appt.AppointmentID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Patient: %s", appt.UserData.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Doctor: %s", appt.DocData.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s at %s", displayDate, appt.SlotTime))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Fee: %.2f", appt.Amount))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("receipt-qr", 15, 110, 60, 60, false, imageOpts, 0, "")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=receipt-%s.pdf", appt.AppointmentID))
	if err := pdf.Output(w); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render PDF")
	}
}
