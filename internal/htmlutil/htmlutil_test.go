package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestStripParams(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		params   []string
		expected string
	}{
		{
			name:     "tracking params",
			url:      "https://www.jobs.cz/rpd/2000123/?searchId=abc&rps=233&positionOfAdInAgentEmail=1",
			params:   []string{"positionOfAdInAgentEmail", "searchId", "rps"},
			expected: "https://www.jobs.cz/rpd/2000123/",
		},
		{
			name:     "other params kept",
			url:      "https://my.teamio.com/logo.png?width=100&v=2",
			params:   []string{"width"},
			expected: "https://my.teamio.com/logo.png?v=2",
		},
		{
			name:     "untouched",
			url:      "https://junior.guru/?b=2&a=1",
			params:   []string{"width"},
			expected: "https://junior.guru/?b=2&a=1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, StripParams(tc.url, tc.params...))
		})
	}
}

func TestText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<li class="item"><span>Acme</span>  Praha –
		Karlín </li>`,
	))
	require.NoError(t, err)

	item := doc.Find("li.item")
	require.Equal(t, "Acme Praha – Karlín", CleanText(GetText(item.Nodes[0])))
	require.Equal(t, "Praha – Karlín", CleanText(strings.Join(OwnText(item), "")))
	require.Equal(t, "Acme Praha – Karlín", Text(item))
	require.Equal(t, "", Text(doc.Find("h1")))
}

func TestGetTextSkipsScripts(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<h2><a>Tester<script>track()</script><style>a{}</style></a></h2>`,
	))
	require.NoError(t, err)
	require.Equal(t, "Tester", GetText(doc.Find("h2").Nodes[0]))
}

func TestResolve(t *testing.T) {
	base, _ := url.Parse("https://www.jobs.cz/prace/?q=python")
	link, err := Resolve(base, " /rpd/123/ ")
	require.NoError(t, err)
	require.Equal(t, "https://www.jobs.cz/rpd/123/", link.String())
}
