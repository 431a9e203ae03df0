package interfaces

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	paymentErrors "github.com/sebuszqo/PaymentsService/internal/payment/errors"
)

type ReceiptServiceInterface interface {
	GenerateReceipt(ctx context.Context, paymentID int64) ([]byte, error)
}

type ReceiptHandler struct {
	service      ReceiptServiceInterface
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewReceiptHandler(
	service ReceiptServiceInterface,
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ReceiptHandler {
	if service == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ReceiptHandler{service: service, respondError: respondError}
}

// DownloadReceipt streams the PDF receipt of a completed payment.
// Missing and unconfirmed payments get an empty body.
func (h *ReceiptHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := parsePathID(w, r, "paymentID", h.respondError)
	if !ok {
		return
	}

	pdf, err := h.service.GenerateReceipt(r.Context(), paymentID)
	if err != nil {
		switch {
		case errors.Is(err, paymentErrors.ErrPaymentNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, paymentErrors.ErrInvalidPaymentState):
			w.WriteHeader(http.StatusBadRequest)
		default:
			log.Printf("Error generating receipt for payment %d: %v", paymentID, err)
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate payment receipt: %v", err))
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"receipt_%d.pdf\"", paymentID))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing receipt for payment %d: %v", paymentID, err)
	}
}
