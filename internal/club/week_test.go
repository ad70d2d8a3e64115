package club

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestParseWeek(t *testing.T) {
	testCases := []struct {
		name     string
		expected time.Time
	}{
		{"Týden 4.3. - 10.3.", day(2024, 3, 4)},
		{"Týden 26.2. - 3.3.", day(2024, 2, 26)},
		{"Týden 1. - 7.4.", day(2024, 4, 1)},
		{"Týden 04.03. - 10.03.", day(2024, 3, 4)},
		{"Týden 4. 3. - 10. 3.", day(2024, 3, 4)},
		{"Týden 6.3. - 12.3.23", day(2023, 3, 6)},
		{"Týden 6.3. - 12.3.2023", day(2023, 3, 6)},
		// a name not starting on monday still resolves to its week
		{"Týden 6.3. - 10.3.", day(2024, 3, 4)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			monday, err := ParseWeek(tc.name, 2024)
			require.NoError(t, err)
			require.Equal(t, tc.expected, monday)
		})
	}
}

func TestParseWeekInvalid(t *testing.T) {
	for _, name := range []string{"", "Plány na týden", "Týden 31.2. - 6.3."} {
		_, err := ParseWeek(name, 2024)
		require.Error(t, err, name)
	}
}

func TestMonday(t *testing.T) {
	require.Equal(t, day(2024, 3, 4), Monday(day(2024, 3, 4)))
	require.Equal(t, day(2024, 3, 4), Monday(day(2024, 3, 10)))
	require.Equal(t, day(2024, 2, 26), Monday(time.Date(2024, 3, 3, 23, 30, 0, 0, time.UTC)))
}

func TestWeekName(t *testing.T) {
	require.Equal(t, "Týden 4.3. - 10.3.", WeekName(day(2024, 3, 4)))
	require.Equal(t, "Týden 26.2. - 3.3.", WeekName(day(2024, 2, 26)))
	require.Equal(t, "Týden 30.12. - 5.1.", WeekName(day(2024, 12, 30)))
}
