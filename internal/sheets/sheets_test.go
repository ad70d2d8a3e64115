package sheets

import (
	"context"
	"encoding/json"
	"io"
	"juniorguru-sync/internal/components/telemetry"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type call struct {
	method string
	path   string
	body   string
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]call) {
	t.Helper()

	var calls []call
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, body: string(body)})
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(
		context.Background(),
		"doc",
		&telemetry.Mock{},
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return client, &calls
}

func TestReplace(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"values": [["Name", "Active?", "Old"], ["Petr"], ["Jana"]]}`))
			return
		}
		w.Write([]byte(`{}`))
	})

	err := client.Replace(context.Background(), "subscriptions", Table{
		Header: []string{"Name", "Active?"},
		Rows:   [][]any{{"Jana", true}},
	})
	require.NoError(t, err)
	require.Len(t, *calls, 2)

	read := (*calls)[0]
	require.Equal(t, http.MethodGet, read.method)
	require.True(t, strings.HasSuffix(read.path, "/values/subscriptions"), read.path)

	update := (*calls)[1]
	require.Equal(t, http.MethodPut, update.method)
	require.Contains(t, update.path, "/values/subscriptions!A1")

	var payload struct {
		Values [][]any `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(update.body), &payload))
	require.Equal(t, [][]any{
		{"Name", "Active?", ""},
		{"Jana", true, ""},
		{"", "", ""},
	}, payload.Values)
}

func TestReplaceUpdateFails(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{"values": [["Name"], ["Petr"]]}`))
	})

	err := client.Replace(context.Background(), "subscriptions", Table{Header: []string{"Name"}})
	require.Error(t, err)
	for _, c := range *calls {
		require.NotContains(t, c.path, ":clear")
		require.NotEqual(t, http.MethodPost, c.method)
	}
}

func TestReplaceReadFails(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := client.Replace(context.Background(), "subscriptions", Table{Header: []string{"Name"}})
	require.Error(t, err)
	require.Len(t, *calls, 1)
	require.Equal(t, http.MethodGet, (*calls)[0].method)
}

func TestPadValues(t *testing.T) {
	require.Equal(t, [][]any{{"a", "b"}}, padValues([][]any{{"a", "b"}}, nil))
	require.Equal(t, [][]any{{"a", ""}, {"", ""}}, padValues([][]any{{"a"}}, [][]any{{"x", "y"}, {"z"}}))
}

func TestRecords(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{
			"range": "jobs!A1:C3",
			"values": [
				["Title", "Approved", "Timestamp"],
				["Junior Go developer", "2024-01-02"],
				["Tester", "", "1/5/2024 10:00:00"]
			]
		}`))
	})

	records, err := client.Records(context.Background(), "jobs")
	require.NoError(t, err)
	require.Equal(t, []map[string]string{
		{"Title": "Junior Go developer", "Approved": "2024-01-02", "Timestamp": ""},
		{"Title": "Tester", "Approved": "", "Timestamp": "1/5/2024 10:00:00"},
	}, records)
}
