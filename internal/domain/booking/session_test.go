package booking

import (
	"testing"
	"time"

	"github.com/barberking/booking-api/internal/httperr"
)

var openRules = Rules{ClosedWeekday: -1}

func startedSession(t *testing.T) *Session {
	t.Helper()

	sess := New("sess-1")
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) // Monday

	if err := sess.SelectService("svc-1"); err != nil {
		t.Fatalf("SelectService: %v", err)
	}
	if err := sess.SelectDate(now.Add(24*time.Hour), now, openRules); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	return sess
}

func TestSession_HappyPath(t *testing.T) {
	sess := startedSession(t)

	slot := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	if err := sess.SelectTime(slot, []time.Time{slot}); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}
	if sess.Step != StepConfirmationPending {
		t.Fatalf("expected confirmation_pending, got %s", sess.Step)
	}

	if err := sess.ReadyToConfirm("Ana", "+34600000000"); err != nil {
		t.Fatalf("ReadyToConfirm: %v", err)
	}

	sess.Reset()
	if sess.Step != StepSelectingService || sess.ServiceID != "" || !sess.Start.IsZero() {
		t.Fatalf("reset left state behind: %+v", sess)
	}
}

func TestSession_StepOrderEnforced(t *testing.T) {
	sess := New("sess-1")
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	if err := sess.SelectDate(now, now, openRules); !httperr.IsBusiness(err, "invalid_step") {
		t.Fatalf("date accepted before service: %v", err)
	}
	if err := sess.SelectTime(now, nil); !httperr.IsBusiness(err, "invalid_step") {
		t.Fatalf("time accepted before date: %v", err)
	}
	if err := sess.ReadyToConfirm("Ana", "600"); !httperr.IsBusiness(err, "invalid_step") {
		t.Fatalf("confirm accepted before time: %v", err)
	}
}

func TestSession_DateRules(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) // Monday

	sess := New("s")
	_ = sess.SelectService("svc-1")
	if err := sess.SelectDate(now.Add(-24*time.Hour), now, openRules); !httperr.IsBusiness(err, "date_in_past") {
		t.Fatalf("expected date_in_past, got %v", err)
	}

	// Today is fine even mid-day.
	if err := sess.SelectDate(now, now, openRules); err != nil {
		t.Fatalf("today rejected: %v", err)
	}

	// Sunday closed.
	sess = New("s")
	_ = sess.SelectService("svc-1")
	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if err := sess.SelectDate(sunday, now, Rules{ClosedWeekday: 0}); !httperr.IsBusiness(err, "shop_closed") {
		t.Fatalf("expected shop_closed, got %v", err)
	}
}

func TestSession_SelectTimeRejectsUnoffered(t *testing.T) {
	sess := startedSession(t)

	offered := []time.Time{time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)}
	picked := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if err := sess.SelectTime(picked, offered); !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
	if sess.Step != StepSelectingTime {
		t.Fatalf("failed pick moved the step to %s", sess.Step)
	}
}

func TestSession_BackClearsOnlyCurrentChoice(t *testing.T) {
	sess := startedSession(t)

	slot := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	if err := sess.SelectTime(slot, []time.Time{slot}); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}

	if err := sess.Back(); err != nil {
		t.Fatalf("Back from confirmation: %v", err)
	}
	if sess.Step != StepSelectingTime || !sess.Start.IsZero() || sess.Date.IsZero() {
		t.Fatalf("back from confirmation cleared too much: %+v", sess)
	}

	if err := sess.Back(); err != nil {
		t.Fatalf("Back from time: %v", err)
	}
	if sess.Step != StepSelectingDate || !sess.Date.IsZero() || sess.ServiceID == "" {
		t.Fatalf("back from time cleared too much: %+v", sess)
	}

	if err := sess.Back(); err != nil {
		t.Fatalf("Back from date: %v", err)
	}
	if sess.Step != StepSelectingService || sess.ServiceID != "" {
		t.Fatalf("back from date kept the service: %+v", sess)
	}

	if err := sess.Back(); !httperr.IsBusiness(err, "invalid_step") {
		t.Fatalf("back past the first step: %v", err)
	}
}

func TestSession_AbortToTimeSelection(t *testing.T) {
	sess := startedSession(t)

	slot := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	if err := sess.SelectTime(slot, []time.Time{slot}); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}

	sess.AbortToTimeSelection()
	if sess.Step != StepSelectingTime || !sess.Start.IsZero() {
		t.Fatalf("abort left confirmation state: %+v", sess)
	}
	if sess.ServiceID == "" || sess.Date.IsZero() {
		t.Fatalf("abort dropped service or date: %+v", sess)
	}
}

func TestSession_ConfirmRequiresContact(t *testing.T) {
	sess := startedSession(t)

	slot := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	if err := sess.SelectTime(slot, []time.Time{slot}); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}

	if err := sess.ReadyToConfirm("", "+34600000000"); !httperr.IsBusiness(err, "contact_required") {
		t.Fatalf("expected contact_required without name, got %v", err)
	}
	if err := sess.ReadyToConfirm("Ana", ""); !httperr.IsBusiness(err, "contact_required") {
		t.Fatalf("expected contact_required without phone, got %v", err)
	}
}
