package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/example/joyashop/pkg/models"
)

// PaymentGateway decides the payment outcome of an order. The production
// implementation is a simulator; tests substitute a deterministic one.
type PaymentGateway interface {
	Authorize(ctx context.Context, amount float64) models.PaymentStatus
}

type simulatedGateway struct {
	approvalRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimulatedGateway approves payments with the given probability
// (0.8 means 80% Aprobado, 20% Fallido).
func NewSimulatedGateway(approvalRate float64) PaymentGateway {
	return &simulatedGateway{
		approvalRate: approvalRate,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *simulatedGateway) Authorize(ctx context.Context, amount float64) models.PaymentStatus {
	g.mu.Lock()
	v := g.rnd.Float64()
	g.mu.Unlock()

	if v < g.approvalRate {
		return models.PaymentStatusAprobado
	}
	return models.PaymentStatusFallido
}
