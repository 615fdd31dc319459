package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tedxmekong/stagehub/internal/notification/domain"
	"github.com/tedxmekong/stagehub/internal/notification/repository"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Notification{}, &domain.CalendarEvent{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(zap.NewNop(), repository.New(conn), node)
}

func TestNotifyAndMarkRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := snowflake.ID(7)

	created, err := svc.Notify(ctx, domain.NotifyRequest{
		UserID:  user,
		Title:   "Order shipped",
		Content: "Your order is on the way",
		Type:    domain.TypeOrder,
	})
	require.NoError(t, err)
	assert.False(t, created.Read)

	// Another user cannot mark it read.
	err = svc.MarkRead(ctx, snowflake.ID(8), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(ctx, user, created.ID))

	list, err := svc.ListMine(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)
}

func TestNotifyRejectsEmptyTitle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Notify(context.Background(), domain.NotifyRequest{UserID: 1, Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
}

func TestMarkAllRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := snowflake.ID(9)

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Notify(ctx, domain.NotifyRequest{UserID: user, Title: title})
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllRead(ctx, user))

	list, err := svc.ListMine(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, n := range list {
		assert.True(t, n.Read)
	}
}

func TestCalendarWindowFiltering(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := snowflake.ID(11)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.CreateCalendarEvent(ctx, domain.CalendarEventRequest{
			UserID: user,
			Title:  "entry",
			Date:   base.AddDate(0, 0, i*7),
		})
		require.NoError(t, err)
	}

	from := base.AddDate(0, 0, 3)
	to := base.AddDate(0, 0, 17)
	events, err := svc.ListCalendar(ctx, user, &from, &to)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Date.Equal(base.AddDate(0, 0, 7)))
}

func TestCalendarUpdateAndDeleteScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := snowflake.ID(12)

	event, err := svc.CreateCalendarEvent(ctx, domain.CalendarEventRequest{
		UserID: user,
		Title:  "Prep call",
		Date:   time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	title := "Prep call (moved)"
	_, err = svc.UpdateCalendarEvent(ctx, domain.CalendarEventUpdate{ID: event.ID, UserID: snowflake.ID(13), Title: &title})
	assert.ErrorIs(t, err, domain.ErrCalendarEventNotFound)

	updated, err := svc.UpdateCalendarEvent(ctx, domain.CalendarEventUpdate{ID: event.ID, UserID: user, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	assert.ErrorIs(t, svc.DeleteCalendarEvent(ctx, snowflake.ID(13), event.ID), domain.ErrCalendarEventNotFound)
	require.NoError(t, svc.DeleteCalendarEvent(ctx, user, event.ID))
}
