package service

import (
	"context"
	"sort"

	"github.com/hotdrive/rental-service/rental/internal/model"
	"golang.org/x/sync/errgroup"
)

// Bar is one rendered booking span. A bar is anchored at the first visible
// day of its booking; days it merely passes through carry no bar of their
// own. Overlapping bookings anchored on the same day share the cell in
// equal-height slices.
type Bar struct {
	BookingID   string              `json:"bookingId"`
	Reference   string              `json:"reference"`
	Status      model.BookingStatus `json:"status"`
	ClientName  string              `json:"clientName"`
	Span        int                 `json:"span"`
	Slice       int                 `json:"slice"`
	SliceCount  int                 `json:"sliceCount"`
	ClippedLeft bool                `json:"clippedLeft"`
}

type Cell struct {
	Date model.Date `json:"date"`
	Bars []Bar      `json:"bars,omitempty"`
}

type Row struct {
	Vehicle model.Vehicle `json:"vehicle"`
	Cells   []Cell        `json:"cells"`
}

type Timeline struct {
	WindowStart model.Date      `json:"windowStart"`
	WindowDays  int             `json:"windowDays"`
	Dates       []model.Date    `json:"dates"`
	Rows        []Row           `json:"rows"`
	Unassigned  []model.Booking `json:"unassigned"`
}

// BuildTimeline lays bookings out over a vehicle-by-date grid. Pure; the
// caller supplies the data.
func BuildTimeline(vehicles []model.Vehicle, bookings []model.Booking, unassigned []model.Booking, start model.Date, days int) Timeline {
	dates := model.DateSequence(start, days)
	viewEnd := start.AddDays(days - 1)

	// bookings anchored per vehicle per visible day
	type anchor struct {
		vehicleID int
		offset    int
	}
	anchored := make(map[anchor][]model.Booking)
	for _, b := range bookings {
		if !b.Status.IsBlocking() && b.Status != model.StatusCompleted {
			continue
		}
		if b.AssignedVehicleID == nil && b.Unassigned() {
			continue
		}
		if !model.Overlaps(b.DepartureDate, b.ReturnDate, start, viewEnd) {
			continue
		}
		visibleStart := b.DepartureDate
		if visibleStart.Before(start.Time) {
			visibleStart = start
		}
		offset := int(visibleStart.Sub(start.Time).Hours() / 24)
		key := anchor{vehicleID: b.OccupiedVehicleID(), offset: offset}
		anchored[key] = append(anchored[key], b)
	}

	rows := make([]Row, 0, len(vehicles))
	for _, v := range vehicles {
		cells := make([]Cell, len(dates))
		for i, d := range dates {
			cells[i] = Cell{Date: d}
			group := anchored[anchor{vehicleID: v.ID, offset: i}]
			if len(group) == 0 {
				continue
			}
			// deterministic slice order for stacked overlaps
			sort.Slice(group, func(a, b int) bool {
				if !group[a].CreatedAt.Equal(group[b].CreatedAt) {
					return group[a].CreatedAt.Before(group[b].CreatedAt)
				}
				return group[a].ID < group[b].ID
			})
			bars := make([]Bar, 0, len(group))
			for sliceIdx, b := range group {
				bars = append(bars, Bar{
					BookingID:   b.ID,
					Reference:   b.Reference,
					Status:      b.Status,
					ClientName:  b.ClientName,
					Span:        barSpan(b, d, viewEnd),
					Slice:       sliceIdx,
					SliceCount:  len(group),
					ClippedLeft: b.DepartureDate.Before(d.Time),
				})
			}
			cells[i].Bars = bars
		}
		rows = append(rows, Row{Vehicle: v, Cells: cells})
	}

	return Timeline{
		WindowStart: start,
		WindowDays:  days,
		Dates:       dates,
		Rows:        rows,
		Unassigned:  unassigned,
	}
}

// barSpan is the visible width in days, clipped so a bar never renders past
// the window's right edge.
func barSpan(b model.Booking, visibleStart, viewEnd model.Date) int {
	end := b.ReturnDate
	if end.After(viewEnd.Time) {
		end = viewEnd
	}
	return int(end.Sub(visibleStart.Time).Hours()/24) + 1
}

// CanDrop enforces the same-row drag constraint: a booking may only be
// dropped on the row of its currently occupied vehicle. Cross-row moves go
// through the assignment menu, never through drag.
func CanDrop(b model.Booking, targetVehicleID int) bool {
	return b.OccupiedVehicleID() == targetVehicleID
}

func (s *Service) Timeline(ctx context.Context, start model.Date, days int) (Timeline, error) {
	viewEnd := start.AddDays(days - 1)

	var (
		vehicles   []model.Vehicle
		bookings   []model.Booking
		unassigned []model.Booking
	)
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		var err error
		vehicles, err = s.repo.ListVehicles(ctx)
		return err
	})
	gg.Go(func() error {
		var err error
		bookings, err = s.repo.ListScheduledBookings(ctx, start, viewEnd)
		return err
	})
	gg.Go(func() error {
		var err error
		unassigned, err = s.repo.ListUnassigned(ctx)
		return err
	})
	if err := gg.Wait(); err != nil {
		return Timeline{}, err
	}
	return BuildTimeline(vehicles, bookings, unassigned, start, days), nil
}
