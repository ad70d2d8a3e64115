package subscriptions

import (
	"juniorguru-sync/internal/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordRow(t *testing.T) {
	schools := []School{{Name: "Czechitas"}, {Name: "Engeto"}}
	record := Record{
		Name:            "Jana Nováková",
		Gender:          "F",
		MemberfulID:     "m1",
		MemberfulActive: true,
		MemberfulSince:  date(2021, 6, 1),
		Students: []StudentFields{
			{Since: date(2024, 1, 10), Months: []string{"2024-01", "2024-02"}, Invoiced: "2024-02-01"},
			{},
		},
	}

	header := Header(schools)
	row := record.Row()
	require.Len(t, row, len(header))

	cells := make(map[string]any, len(header))
	for i, h := range header {
		cells[h] = row[i]
	}
	require.Equal(t, "Jana Nováková", cells["Name"])
	require.Equal(t, true, cells["Memberful Active?"])
	require.Equal(t, "2021-06-01", cells["Memberful Since"])
	require.Equal(t, "", cells["Memberful End"])
	require.Equal(t, false, cells["Memberful Past Due?"])
	require.Equal(t, "2024-01-10", cells["Czechitas Student Since"])
	require.Equal(t, "2024-01, 2024-02", cells["Czechitas Student Months"])
	require.Equal(t, "2024-02-01", cells["Czechitas Student Invoiced?"])
	require.Equal(t, "", cells["Engeto Student Since"])
}

func TestSuggestDiscordName(t *testing.T) {
	users := []db.ClubUser{
		{ID: 1, DisplayName: "Honza Javorek"},
		{ID: 2, DisplayName: "petr svoboda"},
		{ID: 3, DisplayName: "Petr Svoboda", IsBot: true},
	}
	require.Equal(t, "petr svoboda", SuggestDiscordName("Petr Svoboda", users))
	require.Equal(t, "", SuggestDiscordName("Kateřina Malá", users))
	require.Equal(t, "", SuggestDiscordName("  ", users))
}
