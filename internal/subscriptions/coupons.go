package subscriptions

import (
	"fmt"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/memberful"
	"slices"
	"strings"
	"time"
)

// ActiveCoupon returns the coupon currently applied to the subscription: the
// subscription level coupon if there is one, otherwise the coupon of the most
// recent order (which may be none).
func ActiveCoupon(sub memberful.Subscription) string {
	if code := sub.CouponCode(); code != "" {
		return code
	}
	orders := sortOrdersDesc(sub.Orders)
	if len(orders) == 0 {
		return ""
	}
	return orders[0].CouponCode()
}

func studentOrders(sub memberful.Subscription, studentCouponBase string) []memberful.Order {
	if studentCouponBase == "" {
		return nil
	}
	var out []memberful.Order
	for _, order := range sub.Orders {
		if strings.HasPrefix(order.CouponCode(), studentCouponBase) {
			out = append(out, order)
		}
	}
	return out
}

// StudentStartedOn returns the date of the first order paid with a student
// coupon of the given school, zero if there is none.
func StudentStartedOn(sub memberful.Subscription, studentCouponBase string) time.Time {
	var first int64
	found := false
	for _, order := range studentOrders(sub, studentCouponBase) {
		if !found || order.CreatedAt < first {
			first = order.CreatedAt
			found = true
		}
	}
	if !found {
		return time.Time{}
	}
	return chrono.FromUnixDate(first)
}

// StudentMonths returns the sorted YYYY-MM months of orders paid with a
// student coupon of the given school.
func StudentMonths(sub memberful.Subscription, studentCouponBase string) []string {
	orders := studentOrders(sub, studentCouponBase)
	months := make([]string, len(orders))
	for i, order := range orders {
		createdAt := time.Unix(order.CreatedAt, 0).UTC()
		months[i] = fmt.Sprintf("%04d-%02d", createdAt.Year(), createdAt.Month())
	}
	slices.Sort(months)
	return months
}
