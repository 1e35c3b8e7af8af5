package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthYear(t *testing.T) {
	tests := []struct {
		input   string
		month   int
		year    int
		wantErr bool
	}{
		{"03/2021", 3, 2021, false},
		{"12/1999", 12, 1999, false},
		{"13/2021", 0, 0, true},
		{"00/2021", 0, 0, true},
		{"2021-03", 0, 0, true},
		{"March 2021", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			my, err := ParseMonthYear(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.month, my.Month())
			assert.Equal(t, tt.year, my.Year())
		})
	}
}

func TestMonthYearString(t *testing.T) {
	my, err := NewMonthYear(3, 2021)
	require.NoError(t, err)
	assert.Equal(t, "03/2021", my.String())
}

func TestMonthYearBefore(t *testing.T) {
	jan2020, _ := NewMonthYear(1, 2020)
	dec2020, _ := NewMonthYear(12, 2020)
	jan2021, _ := NewMonthYear(1, 2021)

	assert.True(t, jan2020.Before(dec2020))
	assert.True(t, dec2020.Before(jan2021))
	assert.False(t, jan2021.Before(jan2020))
	assert.False(t, jan2020.Before(jan2020))
}
