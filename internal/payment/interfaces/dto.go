package interfaces

import (
	"encoding/json"

	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
	paymentErrors "github.com/sebuszqo/PaymentsService/internal/payment/errors"
	"github.com/shopspring/decimal"
)

type paymentRequest struct {
	ArtistID      *int64           `json:"artistId"`
	Concept       string           `json:"concept"`
	PaymentDate   *string          `json:"paymentDate"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod string           `json:"paymentMethod"`
	Status        *string          `json:"status"`
}

// toFields checks presence and enum values; range checks happen in domain.
func (r paymentRequest) toFields() (domain.PaymentFields, error) {
	var fields domain.PaymentFields
	var validationErrors = &paymentErrors.ValidationErrors{}

	if r.ArtistID == nil {
		validationErrors.Add(paymentErrors.NewValidationError("Artist ID is required"))
	} else {
		fields.ArtistID = *r.ArtistID
	}

	if r.Amount == nil {
		validationErrors.Add(paymentErrors.NewValidationError("Amount is required"))
	} else {
		fields.Amount = *r.Amount
	}

	method, err := domain.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		validationErrors.Add(err)
	}
	fields.PaymentMethod = method

	if r.Status != nil && *r.Status != "" {
		status, err := domain.ParsePaymentStatus(*r.Status)
		if err != nil {
			validationErrors.Add(err)
		} else {
			fields.Status = &status
		}
	}

	if r.PaymentDate != nil && *r.PaymentDate != "" {
		date, err := domain.ParsePaymentDate(*r.PaymentDate)
		if err != nil {
			validationErrors.Add(err)
		} else {
			fields.PaymentDate = &date
		}
	}

	fields.Concept = r.Concept

	if len(validationErrors.Errors) == 1 {
		return fields, validationErrors.Errors[0]
	}
	return fields, validationErrors.ErrOrNil()
}

type paymentResponse struct {
	ID                       int64       `json:"id"`
	ArtistID                 int64       `json:"artistId"`
	Concept                  string      `json:"concept"`
	PaymentDate              string      `json:"paymentDate"`
	Amount                   json.Number `json:"amount"`
	PaymentMethod            string      `json:"paymentMethod"`
	PaymentMethodDescription string      `json:"paymentMethodDescription"`
	Status                   string      `json:"status"`
}

func toPaymentResponse(p domain.Payment) paymentResponse {
	return paymentResponse{
		ID:                       p.ID,
		ArtistID:                 p.ArtistID,
		Concept:                  p.Concept,
		PaymentDate:              p.PaymentDate.Format(domain.DateLayout),
		Amount:                   json.Number(p.Amount.StringFixed(domain.AmountScale)),
		PaymentMethod:            string(p.PaymentMethod),
		PaymentMethodDescription: p.PaymentMethod.Description(),
		Status:                   string(p.Status),
	}
}

func toPaymentResponses(payments []domain.Payment) []paymentResponse {
	responses := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, toPaymentResponse(p))
	}
	return responses
}
