package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:         1,
		Title:      "Pay rent",
		ListID:     1,
		Priority:   PriorityHigh,
		Recurrence: RecurrenceMonthly,
		DueDate:    DatePtr(2024, 3, 1),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := Task{ID: 1, Title: "x", ListID: 1, Priority: Priority("urgent"), Recurrence: RecurrenceNever}
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityLow
	task.Recurrence = Recurrence("hourly")
	if err := task.Validate(); !errors.Is(err, ErrInvalidRecurrence) {
		t.Fatalf("expected ErrInvalidRecurrence, got: %v", err)
	}

	task.Recurrence = RecurrenceNever
	task.Title = "   "
	if err := task.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"":        PriorityNone,
		"HIGH":    PriorityHigh,
		"alta":    PriorityHigh,
		"Media":   PriorityMedium,
		"média":   PriorityMedium,
		"baixa":   PriorityLow,
		"nenhuma": PriorityNone,
	}
	for in, want := range cases {
		got, err := ParsePriority(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %s, want %s", in, got, want)
		}
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() != 0 || PriorityMedium.Rank() != 1 || PriorityLow.Rank() != 2 || PriorityNone.Rank() != 3 {
		t.Fatal("unexpected rank for canonical priorities")
	}
	if Priority("HIGH").Rank() != 0 {
		t.Fatal("rank should ignore case")
	}
	if Priority("bogus").Rank() != 4 {
		t.Fatal("unknown priority should rank last")
	}
}

func TestSuccessorCopiesFields(t *testing.T) {
	orig := Task{
		ID:         7,
		Title:      "Water plants",
		ListID:     2,
		Completed:  true,
		DueDate:    DatePtr(2024, 1, 31),
		Priority:   PriorityMedium,
		Tags:       []string{"home", "Home"},
		Notes:      "balcony too",
		Recurrence: RecurrenceDaily,
	}
	next, ok := orig.Successor(8)
	if !ok {
		t.Fatal("expected successor for recurring task")
	}
	if next.ID != 8 || next.Completed {
		t.Fatalf("unexpected successor identity/state: %+v", next)
	}
	if FormatDate(next.DueDate) != "2024-02-01" {
		t.Fatalf("unexpected successor due date: %s", FormatDate(next.DueDate))
	}
	if next.Title != orig.Title || next.ListID != orig.ListID || next.Priority != orig.Priority ||
		next.Notes != orig.Notes || next.Recurrence != orig.Recurrence {
		t.Fatalf("successor fields differ: %+v", next)
	}
	next.Tags[0] = "garden"
	if orig.Tags[0] != "home" {
		t.Fatal("successor shares tag storage with original")
	}
	if FormatDate(orig.DueDate) != "2024-01-31" {
		t.Fatal("original due date mutated")
	}
}

func TestSuccessorRequiresRecurrenceAndDueDate(t *testing.T) {
	task := Task{ID: 1, Title: "x", ListID: 1, Recurrence: RecurrenceNever, DueDate: DatePtr(2024, 1, 1)}
	if _, ok := task.Successor(2); ok {
		t.Fatal("never-recurring task must not spawn")
	}
	task.Recurrence = RecurrenceWeekly
	task.DueDate = nil
	if _, ok := task.Successor(2); ok {
		t.Fatal("task without due date must not spawn")
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" work, ,Urgent,work ")
	want := []string{"work", "Urgent", "work"}
	if len(got) != len(want) {
		t.Fatalf("unexpected tags: %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tag[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if tags := ParseTags(""); tags == nil || len(tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", tags)
	}
}

func TestHasTagIgnoresCase(t *testing.T) {
	task := Task{Tags: []string{"Grocery"}}
	if !task.HasTag("grocery") || task.HasTag("groc") {
		t.Fatal("tag match must be exact and case-insensitive")
	}
}
