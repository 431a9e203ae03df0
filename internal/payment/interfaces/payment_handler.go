package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
	paymentErrors "github.com/sebuszqo/PaymentsService/internal/payment/errors"
	"github.com/shopspring/decimal"
)

const maxRequestBodySize = 64 << 10

type PaymentServiceInterface interface {
	CreatePayment(ctx context.Context, fields domain.PaymentFields) (*domain.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, paymentID int64, fields domain.PaymentFields) (*domain.Payment, error)
	GetPaymentsByArtist(ctx context.Context, artistID int64) ([]domain.Payment, error)
	GetPaymentsByArtistOrdered(ctx context.Context, artistID int64) ([]domain.Payment, error)
	FilterPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
}

type PaymentHandler struct {
	service      PaymentServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewPaymentHandler(
	service PaymentServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *PaymentHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &PaymentHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.decodePaymentRequest(w, r)
	if !ok {
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), fields)
	if err != nil {
		if h.respondValidationError(w, err) {
			return
		}
		log.Printf("Error during payment creation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	h.respondJSON(w, http.StatusOK, toPaymentResponse(*payment))
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := h.pathID(w, r, "paymentID")
	if !ok {
		return
	}

	payment, err := h.service.GetPaymentByID(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, paymentErrors.ErrPaymentNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		log.Printf("Error retrieving payment %d: %v", paymentID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve payment")
		return
	}

	h.respondJSON(w, http.StatusOK, toPaymentResponse(*payment))
}

func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := h.pathID(w, r, "paymentID")
	if !ok {
		return
	}
	fields, ok := h.decodePaymentRequest(w, r)
	if !ok {
		return
	}

	payment, err := h.service.UpdatePayment(r.Context(), paymentID, fields)
	if err != nil {
		if errors.Is(err, paymentErrors.ErrPaymentNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if h.respondValidationError(w, err) {
			return
		}
		log.Printf("Error updating payment %d: %v", paymentID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	h.respondJSON(w, http.StatusOK, toPaymentResponse(*payment))
}

func (h *PaymentHandler) FilterPayments(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePaymentFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payments, err := h.service.FilterPayments(r.Context(), filter)
	if err != nil {
		if errors.Is(err, paymentErrors.ErrPaymentNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		log.Printf("Error filtering payments: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	h.respondJSON(w, http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) GetPaymentsByArtist(w http.ResponseWriter, r *http.Request) {
	h.listByArtist(w, r, h.service.GetPaymentsByArtist)
}

func (h *PaymentHandler) GetPaymentsByArtistOrdered(w http.ResponseWriter, r *http.Request) {
	h.listByArtist(w, r, h.service.GetPaymentsByArtistOrdered)
}

func (h *PaymentHandler) listByArtist(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, artistID int64) ([]domain.Payment, error)) {
	artistID, ok := h.pathID(w, r, "artistID")
	if !ok {
		return
	}

	payments, err := list(r.Context(), artistID)
	if err != nil {
		if errors.Is(err, paymentErrors.ErrPaymentNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		log.Printf("Error retrieving payments for artist %d: %v", artistID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	h.respondJSON(w, http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) decodePaymentRequest(w http.ResponseWriter, r *http.Request) (domain.PaymentFields, bool) {
	var req paymentRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return domain.PaymentFields{}, false
	}

	fields, err := req.toFields()
	if err != nil {
		h.respondValidationError(w, err)
		return domain.PaymentFields{}, false
	}
	return fields, true
}

// respondValidationError writes a 400 and returns true when err is a validation failure.
func (h *PaymentHandler) respondValidationError(w http.ResponseWriter, err error) bool {
	var validationErrors *paymentErrors.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.respondError(w, http.StatusBadRequest, "Validation errors occurred", validationErrors.Messages())
		return true
	}
	if paymentErrors.IsValidationError(err) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

func (h *PaymentHandler) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	return parsePathID(w, r, param, h.respondError)
}

func parsePathID(w http.ResponseWriter, r *http.Request, param string, respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(param), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid "+param)
		return 0, false
	}
	return id, true
}

func parsePaymentFilter(r *http.Request) (domain.PaymentFilter, error) {
	var filter domain.PaymentFilter
	query := r.URL.Query()

	if v := query.Get("artistId"); v != "" {
		artistID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, paymentErrors.NewValidationError("Invalid artistId value")
		}
		filter.ArtistID = &artistID
	}
	if v := query.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return filter, paymentErrors.NewValidationError("Invalid month value")
		}
		filter.Month = &month
	}
	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, paymentErrors.NewValidationError("Invalid year value")
		}
		filter.Year = &year
	}
	if v := query.Get("status"); v != "" {
		status, err := domain.ParsePaymentStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if v := query.Get("minAmount"); v != "" {
		minAmount, err := decimal.NewFromString(v)
		if err != nil || domain.CheckAmountMagnitude(minAmount) != nil {
			return filter, paymentErrors.NewValidationError("Invalid minAmount value")
		}
		filter.MinAmount = &minAmount
	}
	if v := query.Get("maxAmount"); v != "" {
		maxAmount, err := decimal.NewFromString(v)
		if err != nil || domain.CheckAmountMagnitude(maxAmount) != nil {
			return filter, paymentErrors.NewValidationError("Invalid maxAmount value")
		}
		filter.MaxAmount = &maxAmount
	}
	return filter, nil
}
