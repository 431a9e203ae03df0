package application

import (
	"context"

	"github.com/sebuszqo/PaymentsService/internal/artist"
)

type MockArtistResolver struct {
	Resolution artist.Resolution
	Calls      []int64
}

func (m *MockArtistResolver) ResolveName(_ context.Context, artistID int64) artist.Resolution {
	m.Calls = append(m.Calls, artistID)
	return m.Resolution
}
