package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/hotdrive/rental-service/rental/internal/dashboard"
	"github.com/hotdrive/rental-service/rental/internal/errs"
	"github.com/hotdrive/rental-service/rental/internal/model"
	mock_repository "github.com/hotdrive/rental-service/rental/internal/repository/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var today = model.NewDate(2024, time.July, 1)

func TestNewStore_Defaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := mock_repository.NewMockRepository(c)
	repo.EXPECT().GetSetting(ctx, gomock.Any()).Return("", errs.ErrNotFound)

	s := dashboard.NewStore(ctx, repo, zap.NewNop(), today)
	state := s.Snapshot()
	require.Equal(t, dashboard.TabGantt, state.ActiveTab)
	require.Equal(t, dashboard.DefaultWindowDays, state.WindowDays)
	require.Equal(t, today, state.WindowStart)
	require.False(t, state.QuickAddOpen)
	require.Empty(t, state.SelectedBookingID)
}

func TestNewStore_RestoresWindowDaysOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := mock_repository.NewMockRepository(c)
	repo.EXPECT().GetSetting(ctx, gomock.Any()).Return("30", nil)

	s := dashboard.NewStore(ctx, repo, zap.NewNop(), today)
	require.Equal(t, 30, s.Snapshot().WindowDays)
	// everything else is reset, not restored
	require.Equal(t, dashboard.TabGantt, s.Snapshot().ActiveTab)
}

func TestStore_Apply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := mock_repository.NewMockRepository(c)
	repo.EXPECT().GetSetting(ctx, gomock.Any()).Return("", errs.ErrNotFound)
	s := dashboard.NewStore(ctx, repo, zap.NewNop(), today)

	tab := dashboard.TabBookings
	days := 60
	repo.EXPECT().SetSetting(ctx, gomock.Any(), "60").Return(nil)
	state := s.Apply(ctx, dashboard.Patch{ActiveTab: &tab, WindowDays: &days})
	require.Equal(t, dashboard.TabBookings, state.ActiveTab)
	require.Equal(t, 60, state.WindowDays)

	// an unsupported window size is ignored, no persistence attempt
	bad := 13
	state = s.Apply(ctx, dashboard.Patch{WindowDays: &bad})
	require.Equal(t, 60, state.WindowDays)

	// persistence failure is logged, state still changes
	ok := 7
	repo.EXPECT().SetSetting(ctx, gomock.Any(), "7").Return(errors.New("db down"))
	state = s.Apply(ctx, dashboard.Patch{WindowDays: &ok})
	require.Equal(t, 7, state.WindowDays)
}

func TestStore_SelectionFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := mock_repository.NewMockRepository(c)
	repo.EXPECT().GetSetting(ctx, gomock.Any()).Return("", errs.ErrNotFound)
	s := dashboard.NewStore(ctx, repo, zap.NewNop(), today)

	_, err := s.TakeArmed()
	require.ErrorIs(t, err, errs.ErrNoSelection)

	s.Arm("b1")
	require.Equal(t, "b1", s.Snapshot().SelectedBookingID)

	// arming another booking replaces the selection
	s.Arm("b2")
	require.Equal(t, "b2", s.Snapshot().SelectedBookingID)

	id, err := s.TakeArmed()
	require.NoError(t, err)
	require.Equal(t, "b2", id)
	require.Empty(t, s.Snapshot().SelectedBookingID)

	_, err = s.TakeArmed()
	require.ErrorIs(t, err, errs.ErrNoSelection)
}
