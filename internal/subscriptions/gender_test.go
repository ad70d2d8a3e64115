package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasFeminineName(t *testing.T) {
	testCases := []struct {
		name     string
		expected bool
	}{
		{"", false},
		{"Jana Nováková", true},
		{"Tereza Dvořáková", true},
		{"jana novakova", true},
		{"Anna", true},
		{"Kateřina Malá", true},
		{"Petr Novák", false},
		{"Marek Dvořák", false},
		{"Annabelle", false},
		{"Jiří Ryska", false},
		{"Eva Malinovská", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, HasFeminineName(tc.name))
		})
	}
}

func TestGender(t *testing.T) {
	require.Equal(t, "F", Gender("Lucie Bílá"))
	require.Equal(t, "M", Gender("Pavel Bílý"))
	require.Equal(t, "M", Gender(""))
}
