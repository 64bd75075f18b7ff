package booking

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

	"atelier/db"
	"atelier/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func signingSecret() []byte {
	if s := os.Getenv("PDF_SIGNING_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("atelier-pdf-secret")
}

// signedPayload returns "id|date|slot|signature" so the QR on a printed
// confirmation can be verified against the booking record.
func signedPayload(b *models.Booking) string {
	data := fmt.Sprintf("%s|%s|%s", b.ID, b.PreferredDate, b.PreferredTimeSlot)
	h := hmac.New(sha256.New, signingSecret())
	h.Write([]byte(data))
	return fmt.Sprintf("%s|%s", data, base64.StdEncoding.EncodeToString(h.Sum(nil)))
}

// GET /api/admin/bookings/booking/:id/confirmation.pdf
func DownloadConfirmation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&booking)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	// QR encodes the meeting link when one is set, otherwise the
	// signed booking payload.
	qrContent := booking.MeetingLink
	if qrContent == "" {
		qrContent = signedPayload(&booking)
	}
	qrPNG, err := qrcode.Encode(qrContent, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", booking.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Email: %s", booking.Email))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", booking.PreferredDate))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Time: %s", booking.PreferredTimeSlot))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Meeting: %s", booking.MeetingType))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", booking.Status))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+booking.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
