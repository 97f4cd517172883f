package zipstate_test

import (
	"testing"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/zipstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadZip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already five digits", "07102", "07102"},
		{"missing leading zeros", "501", "00501"},
		{"empty", "", "00000"},
		{"longer is truncated", "123456789", "12345"},
		{"zip plus four", "07102-1234", "07102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, zipstate.PadZip(tt.in))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	table := zipstate.DefaultTable()

	tests := []struct {
		name  string
		zip   string
		state string
		ok    bool
	}{
		{"irs code with leading zeros", "00501", "NY", true},
		{"leading zeros stripped upstream", "501", "NY", true},
		{"alaska upper bound", "99950", "AK", true},
		{"all zeros", "00000", "", false},
		{"above every range", "99999", "", false},
		{"newark", "07102", "NJ", true},
		{"manhattan", "10001", "NY", true},
		{"connecticut", "06103", "CT", true},
		{"vermont before new york", "05401", "VT", true},
		{"boston", "02108", "MA", true},
		{"puerto rico", "00901", "PR", true},
		{"district of columbia", "20500", "DC", true},
		{"lower bound inclusive", "35004", "AL", true},
		{"gap between ranges", "35003", "", false},
		{"last irs code", "00544", "NY", true},
		{"after irs codes", "00545", "", false},
		{"military mail", "09001", "", false},
		{"after puerto rico", "00989", "", false},
		{"after rhode island", "02941", "", false},
		{"after connecticut", "06929", "", false},
		{"after new jersey", "08990", "", false},
		{"new york lower bound", "10001", "NY", true},
		{"new york upper bound", "14925", "NY", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state, ok := table.Resolve(tt.zip)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.state, state)
		})
	}
}

func TestDefaultTable(t *testing.T) {
	t.Parallel()
	table := zipstate.DefaultTable()
	codes := table.Codes()

	// 50 states, DC and PR.
	assert.Len(t, codes, 52)
	assert.Len(t, table.Ranges("NY"), 2)
	assert.Empty(t, table.Ranges("ZZ"))

	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate state %s", code)
		seen[code] = true

		first, ok := table.Lookup(code)
		require.True(t, ok)
		ranges := table.Ranges(code)
		require.NotEmpty(t, ranges)
		assert.Equal(t, ranges[0], first)
		for _, r := range ranges {
			assert.Len(t, r.MinZip, 5)
			assert.Len(t, r.MaxZip, 5)
			assert.LessOrEqual(t, r.MinZip, r.MaxZip)
		}
	}

	_, ok := table.Lookup("ZZ")
	assert.False(t, ok)
}

func TestNewTable_FirstMatchWins(t *testing.T) {
	t.Parallel()
	table := zipstate.NewTable([]zipstate.StateRange{
		{Code: "AA", MinZip: "10000", MaxZip: "19999"},
		{Code: "BB", MinZip: "15000", MaxZip: "25000"},
	})

	state, ok := table.Resolve("16000")
	require.True(t, ok)
	assert.Equal(t, "AA", state)

	state, ok = table.Resolve("21000")
	require.True(t, ok)
	assert.Equal(t, "BB", state)
}
