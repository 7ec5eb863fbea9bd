package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

const week = 7 * 24 * time.Hour

// Resolver maps period names to weekly windows anchored on Wednesday 00:00 UTC
type Resolver struct {
	Clock clockwork.Clock
}

func NewResolver(clock clockwork.Clock) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{Clock: clock}
}

// Anchor returns the most recent Wednesday 00:00 UTC, today included
func (r *Resolver) Anchor() time.Time {
	now := r.Clock.Now().UTC()
	daysSinceWednesday := (int(now.Weekday()) + 4) % 7
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -daysSinceWednesday)
}

func (r *Resolver) Resolve(name string) (common.DistributionPeriod, error) {
	anchor := r.Anchor()
	switch name {
	case constants.PERIOD_PREV:
		return common.DistributionPeriod{
			FromTimestamp: anchor.Add(-week).Unix(),
			ToTimestamp:   anchor.Unix(),
		}, nil
	case constants.PERIOD_CURRENT:
		return common.DistributionPeriod{
			FromTimestamp: anchor.Unix(),
			ToTimestamp:   anchor.Add(week).Unix(),
		}, nil
	}
	return common.DistributionPeriod{}, errors.Join(constants.ErrInvalidPeriod, fmt.Errorf("'%s'", name))
}
