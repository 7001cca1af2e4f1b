package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		token   string
		want    int
		wantErr bool
	}{
		{token: "1h30m", want: 5400},
		{token: "90s", want: 90},
		{token: "2h2h", want: 14400},
		{token: "1h1m1s", want: 3661},
		{token: "10m5", want: 600},
		{token: "h5m", want: 300},
		{token: "1x2m", want: 120},
		{token: "1 h 30 m", want: 5400},
		{token: "0h5s", want: 5},
		{token: "abc", wantErr: true},
		{token: "", wantErr: true},
		{token: "45", wantErr: true},
		{token: "0s", wantErr: true},
		{token: "hms", wantErr: true},
		{token: "99999999999999999999999h", wantErr: true},
		{token: "9223372036854775807h", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseDuration(tc.token)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidDuration)
				assert.Zero(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDurationIsRepeatable(t *testing.T) {
	first, err := ParseDuration("3m20s")
	require.NoError(t, err)

	for range 5 {
		got, err := ParseDuration("3m20s")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}
