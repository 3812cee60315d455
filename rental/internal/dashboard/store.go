package dashboard

import (
	"context"
	"strconv"
	"sync"

	"github.com/hotdrive/rental-service/rental/internal/errs"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/hotdrive/rental-service/rental/internal/repository"
	"go.uber.org/zap"
)

type Tab string

const (
	TabGantt    Tab = "gantt"
	TabBookings Tab = "bookings"
	TabVehicles Tab = "vehicles"
)

const (
	windowDaysKey     = "dashboard.window_days"
	DefaultWindowDays = 14
)

var allowedWindows = map[int]bool{7: true, 14: true, 30: true, 60: true}

// State is the back-office UI state. Everything resets when the store is
// rebuilt except the window length, which survives via the settings table.
// Auth state is deliberately never persisted.
type State struct {
	ActiveTab          Tab        `json:"activeTab"`
	WindowStart        model.Date `json:"windowStart"`
	WindowDays         int        `json:"windowDays"`
	QuickAddOpen       bool       `json:"quickAddOpen"`
	DetailsBookingID   string     `json:"detailsBookingId,omitempty"`
	UnassignedExpanded bool       `json:"unassignedExpanded"`
	SelectedBookingID  string     `json:"selectedBookingId,omitempty"`
}

// Patch carries a partial state update; nil fields are left untouched.
type Patch struct {
	ActiveTab          *Tab        `json:"activeTab,omitempty"`
	WindowStart        *model.Date `json:"windowStart,omitempty"`
	WindowDays         *int        `json:"windowDays,omitempty"`
	QuickAddOpen       *bool       `json:"quickAddOpen,omitempty"`
	DetailsBookingID   *string     `json:"detailsBookingId,omitempty"`
	UnassignedExpanded *bool       `json:"unassignedExpanded,omitempty"`
}

// Store owns the dashboard state. It is constructed per application, not a
// package global, so tests run independent instances. All writes are
// last-write-wins under one mutex.
type Store struct {
	mu    sync.Mutex
	state State
	repo  repository.Repository
	log   *zap.Logger
}

func NewStore(ctx context.Context, repo repository.Repository, log *zap.Logger, today model.Date) *Store {
	s := &Store{
		repo: repo,
		log:  log.Named("dashboard"),
		state: State{
			ActiveTab:   TabGantt,
			WindowStart: today,
			WindowDays:  DefaultWindowDays,
		},
	}
	if raw, err := repo.GetSetting(ctx, windowDaysKey); err == nil {
		if days, err := strconv.Atoi(raw); err == nil && allowedWindows[days] {
			s.state.WindowDays = days
		}
	}
	return s
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Apply(ctx context.Context, p Patch) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ActiveTab != nil {
		s.state.ActiveTab = *p.ActiveTab
	}
	if p.WindowStart != nil {
		s.state.WindowStart = *p.WindowStart
	}
	if p.WindowDays != nil && allowedWindows[*p.WindowDays] {
		s.state.WindowDays = *p.WindowDays
		// the one field that survives a reload
		if err := s.repo.SetSetting(ctx, windowDaysKey, strconv.Itoa(*p.WindowDays)); err != nil {
			s.log.Warn("persist window days", zap.Error(err))
		}
	}
	if p.QuickAddOpen != nil {
		s.state.QuickAddOpen = *p.QuickAddOpen
	}
	if p.DetailsBookingID != nil {
		s.state.DetailsBookingID = *p.DetailsBookingID
	}
	if p.UnassignedExpanded != nil {
		s.state.UnassignedExpanded = *p.UnassignedExpanded
	}
	return s.state
}

// Arm marks one unassigned booking for tap-to-assign. Only one booking may
// be armed at a time; arming replaces any previous selection.
func (s *Store) Arm(bookingID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedBookingID = bookingID
	return s.state
}

func (s *Store) Disarm() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedBookingID = ""
	return s.state
}

// TakeArmed returns the armed booking id and disarms the selection. The
// assign flow consumes the selection whether the assignment later succeeds
// or not, matching the clear-on-drag-end rule.
func (s *Store) TakeArmed() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedBookingID == "" {
		return "", errs.ErrNoSelection
	}
	id := s.state.SelectedBookingID
	s.state.SelectedBookingID = ""
	return id, nil
}
