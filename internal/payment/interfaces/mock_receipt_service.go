package interfaces

import "context"

type MockReceiptService struct {
	PDF []byte
	Err error
}

func (m *MockReceiptService) GenerateReceipt(_ context.Context, _ int64) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PDF, nil
}
