package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/stretchr/testify/require"
)

func TestDateSequence(t *testing.T) {
	t.Parallel()

	start := model.NewDate(2024, time.June, 28)
	seq := model.DateSequence(start, 5)
	require.Len(t, seq, 5)
	require.Equal(t, "2024-06-28", seq[0].String())
	require.Equal(t, "2024-07-02", seq[4].String())

	require.Nil(t, model.DateSequence(start, 0))
	require.Nil(t, model.DateSequence(start, -3))
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	d := func(day int) model.Date { return model.NewDate(2024, time.July, day) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd model.Date
		want                       bool
	}{
		{"disjoint before", d(1), d(3), d(5), d(8), false},
		{"disjoint after", d(10), d(12), d(5), d(8), false},
		{"partial overlap", d(1), d(6), d(5), d(8), true},
		{"contained", d(6), d(7), d(5), d(8), true},
		{"covering", d(1), d(12), d(5), d(8), true},
		{"touching endpoints conflict", d(1), d(5), d(5), d(8), true},
		{"touching other end", d(8), d(10), d(5), d(8), true},
		{"same single day", d(5), d(5), d(5), d(5), true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, model.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	d := func(day int) model.Date { return model.NewDate(2024, time.July, day) }

	require.True(t, model.Contains(d(1), d(10), d(3), d(5)))
	require.True(t, model.Contains(d(3), d(5), d(3), d(5)))
	require.False(t, model.Contains(d(3), d(5), d(1), d(10)))
	require.False(t, model.Contains(d(1), d(4), d(3), d(5)))
	require.False(t, model.Contains(d(4), d(10), d(3), d(5)))
}

func TestRentalDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		departure, ret model.Date
		want           int
	}{
		{"same day floors to one", model.NewDate(2024, time.June, 1), model.NewDate(2024, time.June, 1), 1},
		{"three days", model.NewDate(2024, time.June, 1), model.NewDate(2024, time.June, 4), 3},
		{"one day", model.NewDate(2024, time.June, 1), model.NewDate(2024, time.June, 2), 1},
		{"reversed still floors to one", model.NewDate(2024, time.June, 4), model.NewDate(2024, time.June, 1), 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, model.RentalDays(tt.departure, tt.ret))
		})
	}
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	d := model.NewDate(2024, time.November, 7)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-11-07"`, string(b))

	var back model.Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-11-07"`), &back))
	require.True(t, back.Equal(d.Time))

	require.Error(t, json.Unmarshal([]byte(`"07/11/2024"`), &back))
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, model.StatusActive, model.NormalizeStatus("confirmed"))
	require.Equal(t, model.StatusActive, model.NormalizeStatus("active"))
	require.Equal(t, model.StatusPending, model.NormalizeStatus("pending"))
	require.Equal(t, model.StatusNew, model.NormalizeStatus("garbage"))
}

func TestBookingOccupiedVehicleID(t *testing.T) {
	t.Parallel()

	b := model.Booking{VehicleID: 3}
	require.Equal(t, 3, b.OccupiedVehicleID())

	assigned := 7
	b.AssignedVehicleID = &assigned
	require.Equal(t, 7, b.OccupiedVehicleID())
}
