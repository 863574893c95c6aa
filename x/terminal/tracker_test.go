package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fount-one/fount/errors"
)

func TestUnprocessedTickets(t *testing.T) {
	cases := map[string]struct {
		tracker, supply int64
		want            int64
		wantErr         *errors.Error
	}{
		"all processed":            {100, 100, 0, nil},
		"partially processed":      {40, 100, 60, nil},
		"zero tracker":             {0, 100, 100, nil},
		"negative tracker":         {-5, 10, 15, nil},
		"negative on empty supply": {-7, 0, 7, nil},
		"tracker above supply":     {101, 100, 0, errors.ErrState},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := unprocessedTickets(tc.tracker, tc.supply)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReservedTickets(t *testing.T) {
	cases := map[string]struct {
		tracker int64
		rate    int32
		supply  int64
		want    int64
	}{
		"nothing unprocessed":    {100, 100, 100, 0},
		"zero rate owes nothing": {0, 0, 100, 0},
		"full rate owes all":     {-50, 200, 0, 50},
		"half rate":              {0, 100, 60, 60},
		"quarter rate":           {0, 50, 60, 20},
		"negative tracker":       {-40, 100, 0, 40},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := reservedTickets(tc.tracker, tc.rate, tc.supply)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReservedTicketsMonotoneInRate(t *testing.T) {
	// With a fixed unprocessed position a higher reserved rate never
	// owes fewer tickets.
	prev := int64(-1)
	for rate := int32(0); rate <= 200; rate++ {
		got, err := reservedTickets(0, rate, 1000)
		require.NoError(t, err)
		require.True(t, got >= prev, "rate %d: %d < %d", rate, got, prev)
		prev = got
	}
}

func TestTrackerSignCrossing(t *testing.T) {
	// A redemption moves the tracker down by the burned count, so
	// measured against the pre-burn supply the unprocessed position
	// grows by exactly that count, even when the tracker flips sign.
	before, err := unprocessedTickets(-5, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), before)

	tracker, err := subInt64(-5, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(-13), tracker)

	after, err := unprocessedTickets(tracker, 10)
	require.NoError(t, err)
	assert.Equal(t, before+8, after)
}

func TestReservedTicketsRejectsBadRate(t *testing.T) {
	_, err := reservedTickets(0, 201, 100)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = reservedTickets(0, -1, 100)
	assert.True(t, errors.ErrInput.Is(err))
}
