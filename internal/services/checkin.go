package services

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/imanelbaz22-debug/serene-app/internal/metrics"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

// CheckInService records check-ins.
type CheckInService struct {
	store store.Store
	clock clockwork.Clock
}

func NewCheckInService(s store.Store, clock clockwork.Clock) *CheckInService {
	return &CheckInService{store: s, clock: clock}
}

// Create stores c, stamping it with the current time when it has none.
// Input is expected to be validated by the caller.
func (s *CheckInService) Create(ctx context.Context, c *model.CheckIn) (*model.CheckIn, error) {
	in := *c
	if in.Timestamp.IsZero() {
		in.Timestamp = s.clock.Now()
	}
	out, err := s.store.CheckIns().Create(ctx, &in)
	if err != nil {
		return nil, err
	}
	metrics.CheckInsCreatedTotal.Inc()
	return out, nil
}
