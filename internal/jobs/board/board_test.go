package board

import (
	"context"
	"errors"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []map[string]string
	err     error
}

func (s fakeSource) Records(ctx context.Context, worksheet string) ([]map[string]string, error) {
	return s.records, s.err
}

var records = []map[string]string{
	{
		"Timestamp":    "3/1/2024 10:00:00",
		"Job Title":    "Tester",
		"Company Name": "Acme",
		"Job Link":     "https://acme.example.com/jobs/1",
		"Approved":     "2024-03-02",
	},
	{
		"Timestamp":    "1/5/2024 08:30:00",
		"Job Title":    "Junior Go developer",
		"Company Name": "Gophers",
		"Company Link": "https://gophers.example.com",
		"Job Link":     "https://gophers.example.com/jobs/go",
		"Location":     "Praha",
		"Approved":     "2024-01-06",
	},
	{
		"Timestamp":    "2/1/2024 09:00:00",
		"Job Title":    "Not approved yet",
		"Company Name": "Waiting",
		"Approved":     "",
	},
	{
		"Timestamp": "yesterday",
		"Job Title": "Broken row",
	},
}

func TestCoerceRecord(t *testing.T) {
	listing, err := CoerceRecord(records[1])
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 5, 8, 30, 0, 0, chrono.Prague()), listing.Timestamp)
	require.Equal(t, "Junior Go developer", listing.Title)
	require.True(t, listing.IsApproved())

	listing, err = CoerceRecord(records[2])
	require.NoError(t, err)
	require.False(t, listing.IsApproved())

	_, err = CoerceRecord(records[3])
	require.Error(t, err)
}

func TestListings(t *testing.T) {
	tel := &telemetry.Mock{}
	listings, err := NewBuilder(fakeSource{records: records}, tel, "jobs").Listings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	require.Equal(t, "Junior Go developer", listings[0].Title)
	require.Equal(t, "Tester", listings[1].Title)
	require.True(t, tel.Has("warning", report_board_record))
}

func TestRender(t *testing.T) {
	var out strings.Builder
	n, err := NewBuilder(fakeSource{records: records}, &telemetry.Mock{}, "jobs").Render(context.Background(), &out)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	html := out.String()
	require.Contains(t, html, `<a href="https://gophers.example.com/jobs/go">Junior Go developer</a>`)
	require.Contains(t, html, `<a href="https://gophers.example.com">Gophers</a>`)
	require.Contains(t, html, `<time datetime="2024-01-05">5. 1. 2024</time>`)
	require.NotContains(t, html, "Not approved yet")
	require.Less(t, strings.Index(html, "Junior Go developer"), strings.Index(html, "Tester"))
}

func TestRenderEmpty(t *testing.T) {
	var out strings.Builder
	n, err := NewBuilder(fakeSource{}, &telemetry.Mock{}, "jobs").Render(context.Background(), &out)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Contains(t, out.String(), "Momentálně tu nejsou žádné nabídky.")
}

func TestBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "jobs", "index.html")
	n, err := NewBuilder(fakeSource{records: records}, &telemetry.Mock{}, "jobs").Build(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "Tester")
}

func TestBuildSourceFails(t *testing.T) {
	_, err := NewBuilder(fakeSource{err: errors.New("quota")}, &telemetry.Mock{}, "jobs").
		Render(context.Background(), &strings.Builder{})
	require.ErrorContains(t, err, "quota")
}
