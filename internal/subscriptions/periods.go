package subscriptions

import (
	"cmp"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/coupon"
	"juniorguru-sync/internal/memberful"
	"slices"
	"time"
)

// Period is one billing period of a subscription, both dates are inclusive.
type Period struct {
	StartOn    time.Time
	EndOn      time.Time
	CouponBase string
}

// sortOrdersDesc returns a copy of the orders, most recent first.
func sortOrdersDesc(orders []memberful.Order) []memberful.Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b memberful.Order) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return sorted
}

// DerivePeriods reconstructs the billing periods of a subscription from its
// orders, most recent period first. Each order starts a period which ends the
// day before the next renewal, the last renewal being the expiration of the
// subscription. A subscription without orders has no periods.
func DerivePeriods(expiresAt int64, orders []memberful.Order) []Period {
	if len(orders) == 0 {
		return nil
	}

	periods := make([]Period, 0, len(orders))
	renewalOn := chrono.FromUnixDate(expiresAt)
	for _, order := range sortOrdersDesc(orders) {
		startOn := chrono.FromUnixDate(order.CreatedAt)
		periods = append(periods, Period{
			StartOn:    startOn,
			EndOn:      renewalOn.AddDate(0, 0, -1),
			CouponBase: coupon.Parse(order.CouponCode()).CouponBase,
		})
		renewalOn = startOn
	}
	return periods
}
