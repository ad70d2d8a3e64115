package subscriptions

import (
	"juniorguru-sync/internal/memberful"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActiveCoupon(t *testing.T) {
	testCases := []struct {
		name     string
		sub      memberful.Subscription
		expected string
	}{
		{
			name: "subscription coupon wins",
			sub: memberful.Subscription{
				Coupon: &memberful.Coupon{Code: "GRANDMA"},
				Orders: []memberful.Order{order(unix(2024, 1, 1), "STUD")},
			},
			expected: "GRANDMA",
		},
		{
			name: "most recent order",
			sub: memberful.Subscription{
				Orders: []memberful.Order{
					order(unix(2024, 2, 1), "NEW"),
					order(unix(2024, 1, 1), "OLD"),
				},
			},
			expected: "NEW",
		},
		{
			name: "most recent order without coupon",
			sub: memberful.Subscription{
				Orders: []memberful.Order{
					order(unix(2024, 1, 1), "OLD"),
					order(unix(2024, 2, 1), ""),
				},
			},
			expected: "",
		},
		{
			name:     "nothing",
			sub:      memberful.Subscription{},
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, ActiveCoupon(tc.sub))
		})
	}
}

func TestStudentFields(t *testing.T) {
	sub := memberful.Subscription{
		Orders: []memberful.Order{
			order(unix(2024, 3, 2), "STUDENTCZECHITAS123456"),
			order(unix(2024, 1, 15), "STUDENTCZECHITAS123455"),
			order(unix(2023, 12, 24), "GRANDMA"),
			order(unix(2024, 4, 2), ""),
		},
	}

	require.Equal(t, []string{"2024-01", "2024-03"}, StudentMonths(sub, "STUDENTCZECHITAS"))
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), StudentStartedOn(sub, "STUDENTCZECHITAS"))

	require.Empty(t, StudentMonths(sub, "STUDENTOTHER"))
	require.True(t, StudentStartedOn(sub, "STUDENTOTHER").IsZero())
	require.True(t, StudentStartedOn(sub, "").IsZero())
}
