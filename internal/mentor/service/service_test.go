package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/mentor/domain"
	"github.com/tedxmekong/stagehub/internal/mentor/repository"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	notificationrepo "github.com/tedxmekong/stagehub/internal/notification/repository"
	notificationservice "github.com/tedxmekong/stagehub/internal/notification/service"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

type fixture struct {
	mentors       domain.Service
	notifications notificationdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&domain.Session{}, &domain.Slot{},
		&notificationdomain.Notification{}, &notificationdomain.CalendarEvent{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()

	notifications := notificationservice.New(log, notificationrepo.New(conn), node)
	mentors := New(log, conn, repository.New(conn), notifications, node)
	return &fixture{mentors: mentors, notifications: notifications}
}

func TestBookFlipsAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := snowflake.ID(10)
	student := snowflake.ID(20)

	slot, err := f.mentors.AddSlot(ctx, domain.SlotRequest{
		MentorID:  mentor,
		Date:      time.Now().Add(48 * time.Hour),
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	if err != nil {
		t.Fatalf("add slot: %v", err)
	}

	session, err := f.mentors.Book(ctx, domain.BookRequest{StudentID: student, SlotID: slot.ID})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if session.Status != domain.SessionScheduled {
		t.Fatalf("status = %s, want scheduled", session.Status)
	}
	if session.MentorID != mentor {
		t.Fatalf("mentor = %d, want %d", session.MentorID, mentor)
	}

	// The slot is no longer bookable.
	if _, err := f.mentors.Book(ctx, domain.BookRequest{StudentID: 21, SlotID: slot.ID}); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected slot unavailable, got %v", err)
	}

	// Mentor got notified, both sides got calendar entries.
	mentorNotes, err := f.notifications.ListMine(ctx, mentor)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(mentorNotes) != 1 || mentorNotes[0].Type != notificationdomain.TypeBooking {
		t.Fatalf("expected one booking notification, got %+v", mentorNotes)
	}
	for _, userID := range []snowflake.ID{mentor, student} {
		entries, err := f.notifications.ListCalendar(ctx, userID, nil, nil)
		if err != nil {
			t.Fatalf("list calendar: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected a calendar entry for %d, got %d", userID, len(entries))
		}
	}
}

func TestCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := snowflake.ID(10)
	student := snowflake.ID(20)

	slot, err := f.mentors.AddSlot(ctx, domain.SlotRequest{
		MentorID: mentor, Date: time.Now().Add(24 * time.Hour), StartTime: "14:00", EndTime: "15:00",
	})
	if err != nil {
		t.Fatalf("add slot: %v", err)
	}
	session, err := f.mentors.Book(ctx, domain.BookRequest{StudentID: student, SlotID: slot.ID})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// A stranger cannot cancel.
	if _, err := f.mentors.Cancel(ctx, 99, session.ID); !errors.Is(err, domain.ErrNotSessionStudent) {
		t.Fatalf("expected participant check, got %v", err)
	}

	cancelled, err := f.mentors.Cancel(ctx, student, session.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.SessionCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}

	// The slot is bookable again.
	if _, err := f.mentors.Book(ctx, domain.BookRequest{StudentID: 21, SlotID: slot.ID}); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestCompleteWithFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := snowflake.ID(10)

	slot, err := f.mentors.AddSlot(ctx, domain.SlotRequest{
		MentorID: mentor, Date: time.Now().Add(24 * time.Hour), StartTime: "14:00", EndTime: "15:00",
	})
	if err != nil {
		t.Fatalf("add slot: %v", err)
	}
	session, err := f.mentors.Book(ctx, domain.BookRequest{StudentID: 20, SlotID: slot.ID})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// Only the session mentor may complete it.
	if _, err := f.mentors.Complete(ctx, 99, session.ID, "nope"); !errors.Is(err, domain.ErrNotSessionMentor) {
		t.Fatalf("expected mentor check, got %v", err)
	}

	done, err := f.mentors.Complete(ctx, mentor, session.ID, "Great delivery, tighten the opening.")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != domain.SessionCompleted {
		t.Fatalf("status = %s, want completed", done.Status)
	}
	if done.Feedback == nil || *done.Feedback == "" {
		t.Fatal("expected feedback to be stored")
	}

	// Completed sessions cannot be cancelled.
	if _, err := f.mentors.Cancel(ctx, mentor, session.ID); !errors.Is(err, domain.ErrSessionNotActive) {
		t.Fatalf("expected not active, got %v", err)
	}
}

func TestAddSlotValidatesRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.mentors.AddSlot(context.Background(), domain.SlotRequest{
		MentorID: 10, Date: time.Now(), StartTime: "15:00", EndTime: "14:00",
	})
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
}
