package testutil

import (
	"context"
	"sync"

	"github.com/harentsoaR/smile-care-api/internal/models"
)

// RecordingNotifier remembers every confirmation it was asked to send.
type RecordingNotifier struct {
	mu   sync.Mutex
	Sent []models.Booking
}

func (n *RecordingNotifier) BookingConfirmed(b models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, b)
}

func (n *RecordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Sent)
}

// FakeGateway records the last charge request and returns Secret or Err.
type FakeGateway struct {
	Secret   string
	Err      error
	Amount   int64
	Currency string
}

func (g *FakeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	g.Amount = amountMinor
	g.Currency = currency
	if g.Err != nil {
		return "", g.Err
	}
	return g.Secret, nil
}
