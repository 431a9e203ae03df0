package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
	paymentErrors "github.com/sebuszqo/PaymentsService/internal/payment/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayment() *domain.Payment {
	return &domain.Payment{
		ID:            1,
		ArtistID:      42,
		Amount:        decimal.RequireFromString("100"),
		PaymentDate:   time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		Concept:       "Gig fee",
		PaymentMethod: domain.PaymentMethodTransfer,
		Status:        domain.PaymentStatusCompleted,
	}
}

func decodeBody(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	return response
}

func TestCreatePayment_Success(t *testing.T) {
	mockService := NewMockPaymentService(samplePayment(), nil, nil)
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	body := `{"artistId":42,"concept":"Gig fee","amount":100.00,"paymentMethod":"transfer","status":"COMPLETED","paymentDate":"2024-06-03"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreatePayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	response := decodeBody(t, res)
	assert.Equal(t, float64(1), response["id"])
	assert.Equal(t, float64(42), response["artistId"])
	assert.Equal(t, float64(100), response["amount"])
	assert.Equal(t, "2024-06-03", response["paymentDate"])
	assert.Equal(t, "TRANSFER", response["paymentMethod"])
	assert.Equal(t, "Bank transfer", response["paymentMethodDescription"])
	assert.Equal(t, "COMPLETED", response["status"])

	received := mockService.ReceivedFields
	assert.Equal(t, int64(42), received.ArtistID)
	assert.Equal(t, domain.PaymentMethodTransfer, received.PaymentMethod)
	require.NotNil(t, received.Status)
	assert.Equal(t, domain.PaymentStatusCompleted, *received.Status)
	require.NotNil(t, received.PaymentDate)
	assert.Equal(t, 3, received.PaymentDate.Day())
}

func TestCreatePayment_OmittedDateAndStatusAreLeftToService(t *testing.T) {
	mockService := NewMockPaymentService(samplePayment(), nil, nil)
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	body := `{"artistId":42,"concept":"Gig fee","amount":"100.00","paymentMethod":"CASH"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreatePayment(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockService.ReceivedFields.PaymentDate)
	assert.Nil(t, mockService.ReceivedFields.Status)
}

func TestCreatePayment_InvalidBody(t *testing.T) {
	handler := NewPaymentHandler(NewMockPaymentService(nil, nil, nil), respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(`{"artistId":`))
	w := httptest.NewRecorder()

	handler.CreatePayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	response := decodeBody(t, res)
	assert.Equal(t, "error", response["status"])
	assert.Equal(t, "Invalid request body", response["message"])
}

func TestCreatePayment_MissingFields(t *testing.T) {
	handler := NewPaymentHandler(NewMockPaymentService(nil, nil, nil), respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(`{"concept":"Gig fee","paymentMethod":"PAYPAL"}`))
	w := httptest.NewRecorder()

	handler.CreatePayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	response := decodeBody(t, res)
	assert.Equal(t, "Validation errors occurred", response["message"])
	assert.ElementsMatch(t, []interface{}{"Artist ID is required", "Amount is required"}, response["errors"])
}

func TestCreatePayment_UnknownMethod(t *testing.T) {
	handler := NewPaymentHandler(NewMockPaymentService(nil, nil, nil), respondJSON, respondError)

	body := `{"artistId":42,"concept":"Gig fee","amount":10,"paymentMethod":"BARTER"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreatePayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid payment method", decodeBody(t, res)["message"])
}

func TestCreatePayment_DomainValidationError(t *testing.T) {
	mockService := NewMockPaymentService(nil, nil, paymentErrors.NewValidationError("Amount must not be negative"))
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	body := `{"artistId":42,"concept":"Gig fee","amount":-1,"paymentMethod":"CASH"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreatePayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Amount must not be negative", decodeBody(t, res)["message"])
}

func TestCreatePayment_ServiceError(t *testing.T) {
	mockService := NewMockPaymentService(nil, nil, errors.New("database error"))
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	body := `{"artistId":42,"concept":"Gig fee","amount":10,"paymentMethod":"CASH"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreatePayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Failed to create payment", decodeBody(t, res)["message"])
}

func TestGetPayment(t *testing.T) {
	tests := []struct {
		name       string
		pathID     string
		err        error
		wantStatus int
	}{
		{name: "found", pathID: "1", wantStatus: http.StatusOK},
		{name: "not found", pathID: "9", err: paymentErrors.ErrPaymentNotFound, wantStatus: http.StatusNotFound},
		{name: "service error", pathID: "1", err: errors.New("database error"), wantStatus: http.StatusInternalServerError},
		{name: "malformed id", pathID: "abc", wantStatus: http.StatusBadRequest},
		{name: "non-positive id", pathID: "0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPaymentHandler(NewMockPaymentService(samplePayment(), nil, tt.err), respondJSON, respondError)

			req := httptest.NewRequest(http.MethodGet, "/api/payments/"+tt.pathID, nil)
			req.SetPathValue("paymentID", tt.pathID)
			w := httptest.NewRecorder()

			handler.GetPayment(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestUpdatePayment_Success(t *testing.T) {
	updated := samplePayment()
	updated.Concept = "Festival"
	mockService := NewMockPaymentService(updated, nil, nil)
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	body := `{"artistId":42,"concept":"Festival","amount":100,"paymentMethod":"TRANSFER"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/payments/1", strings.NewReader(body))
	req.SetPathValue("paymentID", "1")
	w := httptest.NewRecorder()

	handler.UpdatePayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Festival", decodeBody(t, res)["concept"])
	assert.Equal(t, int64(1), mockService.ReceivedID)
}

func TestUpdatePayment_NotFoundHasEmptyBody(t *testing.T) {
	handler := NewPaymentHandler(NewMockPaymentService(nil, nil, paymentErrors.ErrPaymentNotFound), respondJSON, respondError)

	body := `{"artistId":42,"concept":"Festival","amount":100,"paymentMethod":"TRANSFER"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/payments/5", strings.NewReader(body))
	req.SetPathValue("paymentID", "5")
	w := httptest.NewRecorder()

	handler.UpdatePayment(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestGetPaymentsByArtist(t *testing.T) {
	payments := []domain.Payment{*samplePayment()}
	mockService := NewMockPaymentService(nil, payments, nil)
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/artists/42/payments", nil)
	req.SetPathValue("artistID", "42")
	w := httptest.NewRecorder()

	handler.GetPaymentsByArtist(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(42), mockService.ReceivedID)

	var response []map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "Gig fee", response[0]["concept"])
}

func TestGetPaymentsByArtistOrdered_EmptyListIsArray(t *testing.T) {
	handler := NewPaymentHandler(NewMockPaymentService(nil, []domain.Payment{}, nil), respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/artists/99/payments/ordered", nil)
	req.SetPathValue("artistID", "99")
	w := httptest.NewRecorder()

	handler.GetPaymentsByArtistOrdered(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetPaymentsByArtist_ServiceError(t *testing.T) {
	handler := NewPaymentHandler(NewMockPaymentService(nil, nil, errors.New("database error")), respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/artists/42/payments", nil)
	req.SetPathValue("artistID", "42")
	w := httptest.NewRecorder()

	handler.GetPaymentsByArtist(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFilterPayments_ParsesQuery(t *testing.T) {
	mockService := NewMockPaymentService(nil, []domain.Payment{*samplePayment()}, nil)
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/payments?artistId=42&month=6&year=2024&status=completed&minAmount=10&maxAmount=500.50", nil)
	w := httptest.NewRecorder()

	handler.FilterPayments(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	filter := mockService.ReceivedFilter
	require.NotNil(t, filter.ArtistID)
	assert.Equal(t, int64(42), *filter.ArtistID)
	require.NotNil(t, filter.Month)
	assert.Equal(t, 6, *filter.Month)
	require.NotNil(t, filter.Year)
	assert.Equal(t, 2024, *filter.Year)
	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.PaymentStatusCompleted, *filter.Status)
	require.NotNil(t, filter.MinAmount)
	assert.Equal(t, "10.00", filter.MinAmount.StringFixed(2))
	require.NotNil(t, filter.MaxAmount)
	assert.Equal(t, "500.50", filter.MaxAmount.StringFixed(2))
}

func TestFilterPayments_NoCriteria(t *testing.T) {
	mockService := NewMockPaymentService(nil, []domain.Payment{}, nil)
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	w := httptest.NewRecorder()

	handler.FilterPayments(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PaymentFilter{}, mockService.ReceivedFilter)
}

func TestFilterPayments_BadQuery(t *testing.T) {
	for _, query := range []string{"month=13", "month=0", "year=abc", "status=LOST", "minAmount=ten", "artistId=x"} {
		t.Run(query, func(t *testing.T) {
			handler := NewPaymentHandler(NewMockPaymentService(nil, nil, nil), respondJSON, respondError)

			req := httptest.NewRequest(http.MethodGet, "/api/payments?"+query, nil)
			w := httptest.NewRecorder()

			handler.FilterPayments(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestFilterPayments_RejectsExtremeAmountBounds(t *testing.T) {
	for _, query := range []string{"minAmount=1e20000000", "maxAmount=1e20000000", "minAmount=1e-20000000"} {
		t.Run(query, func(t *testing.T) {
			mockService := NewMockPaymentService(nil, []domain.Payment{*samplePayment()}, nil)
			handler := NewPaymentHandler(mockService, respondJSON, respondError)

			req := httptest.NewRequest(http.MethodGet, "/api/payments?"+query, nil)
			w := httptest.NewRecorder()

			start := time.Now()
			handler.FilterPayments(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Less(t, time.Since(start), 100*time.Millisecond)
			assert.Equal(t, domain.PaymentFilter{}, mockService.ReceivedFilter)
		})
	}
}

func TestCreatePayment_OversizedBody(t *testing.T) {
	mockService := NewMockPaymentService(samplePayment(), nil, nil)
	handler := NewPaymentHandler(mockService, respondJSON, respondError)

	body := `{"artistId":42,"concept":"Gig fee","paymentMethod":"CASH","amount":` + strings.Repeat("9", maxRequestBodySize) + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreatePayment(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mockService.ReceivedFields.ArtistID)
}

func TestGetPayment_NotFoundHasEmptyBody(t *testing.T) {
	handler := NewPaymentHandler(NewMockPaymentService(nil, nil, paymentErrors.ErrPaymentNotFound), respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/9", nil)
	req.SetPathValue("paymentID", "9")
	w := httptest.NewRecorder()

	handler.GetPayment(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestNewPaymentHandler_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewPaymentHandler(nil, respondJSON, respondError) })
}
