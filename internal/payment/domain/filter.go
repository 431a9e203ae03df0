package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PaymentFilter is a conjunction of optional criteria. A nil field does not
// constrain the result.
type PaymentFilter struct {
	ArtistID  *int64
	Month     *int
	Year      *int
	Status    *PaymentStatus
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

func (f PaymentFilter) Matches(p Payment) bool {
	if f.ArtistID != nil && p.ArtistID != *f.ArtistID {
		return false
	}
	if f.Month != nil && int(p.PaymentDate.Month()) != *f.Month {
		return false
	}
	if f.Year != nil && p.PaymentDate.Year() != *f.Year {
		return false
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.MinAmount != nil && p.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && p.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}

func (f PaymentFilter) Apply(payments []Payment) []Payment {
	filtered := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortByDateDesc orders newest first, breaking ties by ascending ID.
func SortByDateDesc(payments []Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].PaymentDate.Equal(payments[j].PaymentDate) {
			return payments[i].PaymentDate.After(payments[j].PaymentDate)
		}
		return payments[i].ID < payments[j].ID
	})
}
