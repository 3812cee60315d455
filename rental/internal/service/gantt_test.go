package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/hotdrive/rental-service/rental/internal/service"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeline(t *testing.T) {
	t.Parallel()

	vehicles := []model.Vehicle{
		{ID: 3, Name: "VW Golf"},
		{ID: 5, Name: "Toyota RAV4"},
	}

	t.Run("bar renders only at its start cell and spans forward", func(t *testing.T) {
		t.Parallel()
		bookings := []model.Booking{
			booking("b1", 3, model.StatusActive, d(10), d(14)),
		}
		tl := service.BuildTimeline(vehicles, bookings, nil, d(8), 14)

		require.Len(t, tl.Rows, 2)
		require.Len(t, tl.Rows[0].Cells, 14)
		require.Equal(t, "2024-07-08", tl.Dates[0].String())

		// anchored two cells in (offset 2), span 5 days
		require.Empty(t, tl.Rows[0].Cells[0].Bars)
		require.Empty(t, tl.Rows[0].Cells[1].Bars)
		require.Len(t, tl.Rows[0].Cells[2].Bars, 1)
		bar := tl.Rows[0].Cells[2].Bars[0]
		require.Equal(t, "b1", bar.BookingID)
		require.Equal(t, 5, bar.Span)
		require.False(t, bar.ClippedLeft)

		// pass-through days carry no bar
		for i := 3; i < 14; i++ {
			require.Empty(t, tl.Rows[0].Cells[i].Bars, "cell %d", i)
		}
		// other row untouched
		for _, cell := range tl.Rows[1].Cells {
			require.Empty(t, cell.Bars)
		}
	})

	t.Run("bar starting before the window anchors at the left edge", func(t *testing.T) {
		t.Parallel()
		bookings := []model.Booking{
			booking("b1", 3, model.StatusActive, d(1), d(10)),
		}
		tl := service.BuildTimeline(vehicles, bookings, nil, d(8), 7)

		require.Len(t, tl.Rows[0].Cells[0].Bars, 1)
		bar := tl.Rows[0].Cells[0].Bars[0]
		require.Equal(t, 3, bar.Span) // 08..10 visible
		require.True(t, bar.ClippedLeft)
	})

	t.Run("bar is clipped at the window right edge", func(t *testing.T) {
		t.Parallel()
		bookings := []model.Booking{
			booking("b1", 3, model.StatusActive, d(10), d(30)),
		}
		tl := service.BuildTimeline(vehicles, bookings, nil, d(8), 7)

		bar := tl.Rows[0].Cells[2].Bars[0]
		require.Equal(t, 5, bar.Span) // 10..14 visible in a 08..14 window
	})

	t.Run("same-start overlaps stack in equal slices", func(t *testing.T) {
		t.Parallel()
		b1 := booking("b1", 3, model.StatusActive, d(10), d(12))
		b1.CreatedAt = time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)
		b2 := booking("b2", 3, model.StatusPending, d(10), d(15))
		b2.CreatedAt = time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
		three := 3
		b2.AssignedVehicleID = &three

		tl := service.BuildTimeline(vehicles, []model.Booking{b2, b1}, nil, d(8), 14)

		bars := tl.Rows[0].Cells[2].Bars
		require.Len(t, bars, 2)
		require.Equal(t, "b1", bars[0].BookingID)
		require.Equal(t, 0, bars[0].Slice)
		require.Equal(t, 2, bars[0].SliceCount)
		require.Equal(t, "b2", bars[1].BookingID)
		require.Equal(t, 1, bars[1].Slice)
		require.Equal(t, 2, bars[1].SliceCount)
	})

	t.Run("unassigned bookings go to the panel, not the grid", func(t *testing.T) {
		t.Parallel()
		unassigned := booking("b1", 3, model.StatusPending, d(10), d(12))
		tl := service.BuildTimeline(vehicles, []model.Booking{unassigned}, []model.Booking{unassigned}, d(8), 7)

		for _, row := range tl.Rows {
			for _, cell := range row.Cells {
				require.Empty(t, cell.Bars)
			}
		}
		require.Len(t, tl.Unassigned, 1)
	})

	t.Run("cancelled bookings are not drawn", func(t *testing.T) {
		t.Parallel()
		bookings := []model.Booking{
			booking("b1", 3, model.StatusCancelled, d(10), d(12)),
		}
		tl := service.BuildTimeline(vehicles, bookings, nil, d(8), 7)
		require.Empty(t, tl.Rows[0].Cells[2].Bars)
	})
}

func TestService_Timeline_CompletedStaysVisible(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newSvc(t)

	vehicles := []model.Vehicle{{ID: 3, Name: "VW Golf"}}
	done := booking("b1", 3, model.StatusCompleted, d(10), d(12))

	repo.EXPECT().ListVehicles(gomock.Any()).Return(vehicles, nil)
	// the timeline listing keeps completed bookings, dropping only cancelled
	repo.EXPECT().ListScheduledBookings(gomock.Any(), d(8), d(14)).
		Return([]model.Booking{done}, nil)
	repo.EXPECT().ListUnassigned(gomock.Any()).Return(nil, nil)

	tl, err := svc.Timeline(ctx, d(8), 7)
	require.NoError(t, err)
	require.Len(t, tl.Rows, 1)
	require.Len(t, tl.Rows[0].Cells[2].Bars, 1)
	require.Equal(t, model.StatusCompleted, tl.Rows[0].Cells[2].Bars[0].Status)
}

func TestCanDrop(t *testing.T) {
	t.Parallel()

	b := booking("b1", 3, model.StatusActive, d(10), d(14))
	require.True(t, service.CanDrop(b, 3))
	require.False(t, service.CanDrop(b, 5))

	assigned := 5
	b.AssignedVehicleID = &assigned
	require.True(t, service.CanDrop(b, 5))
	require.False(t, service.CanDrop(b, 3))
}
