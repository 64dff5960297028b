package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseNotification(t *testing.T) {
	n, err := ParseNotification([]byte(`{"message":"Bed available"}`))
	require.NoError(t, err)
	require.Equal(t, "Bed available", n.Message)
	require.Nil(t, n.Timestamp)

	n, err = ParseNotification([]byte(`{"message":"m","timestamp":"2026-03-01T10:00:00Z"}`))
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), n.Timestamp.UTC())

	n, err = ParseNotification([]byte(`{"message":"m","timestamp":1700000000000}`))
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), n.Timestamp.Unix())

	n, err = ParseNotification([]byte(`{"message":"m","timestamp":null}`))
	require.NoError(t, err)
	require.Nil(t, n.Timestamp)
}

func TestParseNotification_Malformed(t *testing.T) {
	for _, payload := range []string{
		``,
		`not json`,
		`{"msg":"wrong key"}`,
		`{"message":"   "}`,
		`["message"]`,
	} {
		_, err := ParseNotification([]byte(payload))
		require.Error(t, err, payload)
	}
}

func TestParseNotification_TimestampShapes(t *testing.T) {
	cases := []struct {
		payload string
		want    time.Time
	}{
		{`{"message":"m","timestamp":"2025-03-01T10:15:30+02:00"}`, time.Date(2025, 3, 1, 8, 15, 30, 0, time.UTC)},
		{`{"message":"m","timestamp":"2025-03-01T10:15:30.5Z"}`, time.Date(2025, 3, 1, 10, 15, 30, 500_000_000, time.UTC)},
		{`{"message":"m","timestamp":"2025-03-01T10:15:30"}`, time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC)},
		{`{"message":"m","timestamp":"2025-03-01T10:15:30.123"}`, time.Date(2025, 3, 1, 10, 15, 30, 123_000_000, time.UTC)},
		{`{"message":"m","timestamp":[2025,3,1,10,15,30]}`, time.Date(2025, 3, 1, 10, 15, 30, 0, time.UTC)},
		{`{"message":"m","timestamp":[2025,3,1,10,15]}`, time.Date(2025, 3, 1, 10, 15, 0, 0, time.UTC)},
		{`{"message":"m","timestamp":[2025,3,1,10,15,30,123000000]}`, time.Date(2025, 3, 1, 10, 15, 30, 123_000_000, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.payload, func(t *testing.T) {
			n, err := ParseNotification([]byte(tc.payload))
			require.NoError(t, err)
			require.NotNil(t, n.Timestamp)
			require.True(t, tc.want.Equal(*n.Timestamp), n.Timestamp.String())
		})
	}
}

func TestParseNotification_UnreadableTimestampKeepsMessage(t *testing.T) {
	for _, payload := range []string{
		`{"message":"Bed available","timestamp":"yesterday"}`,
		`{"message":"Bed available","timestamp":true}`,
		`{"message":"Bed available","timestamp":[2025]}`,
		`{"message":"Bed available","timestamp":{"epoch":1}}`,
	} {
		n, err := ParseNotification([]byte(payload))
		require.ErrorIs(t, err, ErrBadTimestamp, payload)
		require.Equal(t, "Bed available", n.Message)
		require.Nil(t, n.Timestamp)
	}
}

func TestHospital_HasFreeBeds(t *testing.T) {
	require.True(t, Hospital{AvailableBeds: 1}.HasFreeBeds())
	require.False(t, Hospital{AvailableBeds: 0}.HasFreeBeds())
}
