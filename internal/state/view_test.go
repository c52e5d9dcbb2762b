package state

import (
	"errors"
	"testing"

	"github.com/five82/todo/internal/todoapi"
)

func items(ids ...string) []todoapi.TodoItem {
	out := make([]todoapi.TodoItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, todoapi.TodoItem{ID: id, Text: "item " + id})
	}
	return out
}

func ids(v View) []string {
	out := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		out = append(out, item.ID)
	}
	return out
}

func equalIDs(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestView_ReplaceAllKeepsOrderAndDropsDuplicates(t *testing.T) {
	var v View
	v.ReplaceAll(append(items("a", "b"), todoapi.TodoItem{ID: "a", Text: "dup"}))

	if got := ids(v); !equalIDs(got, "a", "b") {
		t.Fatalf("ids = %v, want [a b]", got)
	}
	if v.Items[0].Text != "item a" {
		t.Fatalf("first item text = %q, want the first occurrence", v.Items[0].Text)
	}

	v.ReplaceAll(nil)
	if v.Items == nil || len(v.Items) != 0 {
		t.Fatalf("Items = %#v, want empty non-nil slice", v.Items)
	}
}

func TestView_PrependPutsNewItemFirst(t *testing.T) {
	var v View
	v.ReplaceAll(items("a", "b"))

	if err := v.Prepend(todoapi.TodoItem{ID: "c", Text: "new"}); err != nil {
		t.Fatalf("Prepend returned error: %v", err)
	}
	if got := ids(v); !equalIDs(got, "c", "a", "b") {
		t.Fatalf("ids = %v, want [c a b]", got)
	}
}

func TestView_PrependRejectsMissingID(t *testing.T) {
	var v View
	v.ReplaceAll(items("a"))
	before := v.Items

	err := v.Prepend(todoapi.TodoItem{Text: "no id"})
	if !errors.Is(err, todoapi.ErrInvalidResponse) {
		t.Fatalf("Prepend error = %v, want ErrInvalidResponse", err)
	}
	if got := ids(v); !equalIDs(got, "a") || &v.Items[0] != &before[0] {
		t.Fatalf("Items changed on invalid prepend: %v", got)
	}
}

func TestView_ReplaceByIDKeepsPosition(t *testing.T) {
	var v View
	v.ReplaceAll(items("a", "b", "c"))
	snapshot := v

	ok, err := v.ReplaceByID("b", todoapi.TodoItem{ID: "b", Text: "changed", Completed: true})
	if err != nil || !ok {
		t.Fatalf("ReplaceByID = (%v, %v), want (true, nil)", ok, err)
	}
	if got := ids(v); !equalIDs(got, "a", "b", "c") {
		t.Fatalf("ids = %v, want [a b c]", got)
	}
	if v.Items[1].Text != "changed" || !v.Items[1].Completed {
		t.Fatalf("Items[1] = %#v, want replaced item", v.Items[1])
	}
	if snapshot.Items[1].Text != "item b" {
		t.Fatalf("earlier copy mutated: %#v", snapshot.Items[1])
	}
}

func TestView_ReplaceByIDUnknownItem(t *testing.T) {
	var v View
	v.ReplaceAll(items("a"))

	ok, err := v.ReplaceByID("zzz", todoapi.TodoItem{ID: "zzz"})
	if ok || err != nil {
		t.Fatalf("ReplaceByID = (%v, %v), want (false, nil)", ok, err)
	}
	if _, err := v.ReplaceByID("a", todoapi.TodoItem{}); !errors.Is(err, todoapi.ErrInvalidResponse) {
		t.Fatalf("ReplaceByID(no id) error = %v, want ErrInvalidResponse", err)
	}
}

func TestView_ReplaceByIDRejectsOtherID(t *testing.T) {
	var v View
	v.ReplaceAll(items("a", "b"))

	ok, err := v.ReplaceByID("a", todoapi.TodoItem{ID: "b", Text: "from server", Completed: true})
	if ok || !errors.Is(err, todoapi.ErrInvalidResponse) {
		t.Fatalf("ReplaceByID = (%v, %v), want (false, ErrInvalidResponse)", ok, err)
	}
	if v.Items[0].Text != "item a" || v.Items[1].Text != "item b" || v.Items[1].Completed {
		t.Fatalf("Items changed on mismatched id: %#v", v.Items)
	}
}

func TestView_RemoveByIDRemovesExactlyOne(t *testing.T) {
	var v View
	v.ReplaceAll(items("a", "b", "c"))

	if !v.RemoveByID("b") {
		t.Fatalf("RemoveByID(b) = false, want true")
	}
	if got := ids(v); !equalIDs(got, "a", "c") {
		t.Fatalf("ids = %v, want [a c]", got)
	}
	if _, ok := v.Find("b"); ok {
		t.Fatalf("b still present")
	}
	if v.RemoveByID("b") {
		t.Fatalf("second RemoveByID(b) = true, want false")
	}
}

func TestView_EditLifecycle(t *testing.T) {
	var v View
	v.ReplaceAll(items("a", "b"))

	if !v.BeginEdit("a") || v.EditingID != "a" || v.EditDraft != "item a" {
		t.Fatalf("BeginEdit(a) state = %q/%q", v.EditingID, v.EditDraft)
	}
	v.EditDraft = "unsaved"

	if !v.BeginEdit("b") || v.EditingID != "b" || v.EditDraft != "item b" {
		t.Fatalf("BeginEdit(b) state = %q/%q, want b's text to replace a's draft", v.EditingID, v.EditDraft)
	}
	if v.BeginEdit("missing") {
		t.Fatalf("BeginEdit(missing) = true, want false")
	}
	if v.EditingID != "b" {
		t.Fatalf("EditingID = %q after failed BeginEdit, want b", v.EditingID)
	}

	v.RemoveByID("b")
	if v.Editing() {
		t.Fatalf("Editing() = true after the edited item was removed")
	}

	v.BeginEdit("a")
	v.CancelEdit()
	if v.Editing() || v.EditDraft != "" {
		t.Fatalf("CancelEdit left %q/%q", v.EditingID, v.EditDraft)
	}
}

func TestView_CanAddTrimsDraft(t *testing.T) {
	cases := map[string]bool{"": false, "   \t": false, " x ": true}
	for draft, want := range cases {
		v := View{Draft: draft}
		if got := v.CanAdd(); got != want {
			t.Fatalf("CanAdd(%q) = %v, want %v", draft, got, want)
		}
	}
}

func TestView_NotificationsReplaceAndIgnoreStaleDismiss(t *testing.T) {
	var v View

	first := v.Notify("Todo added successfully", SeveritySuccess)
	second := v.Notify("Failed to delete todo", SeverityError)
	if second <= first {
		t.Fatalf("seq %d not greater than %d", second, first)
	}
	if v.Notice.Message != "Failed to delete todo" || v.Notice.Severity != SeverityError {
		t.Fatalf("Notice = %#v, want the latest error", v.Notice)
	}

	if v.Dismiss(first) {
		t.Fatalf("Dismiss(stale) = true, want false")
	}
	if !v.Notice.Visible {
		t.Fatalf("stale dismiss hid the current notification")
	}
	if !v.Dismiss(second) || v.Notice.Visible {
		t.Fatalf("Dismiss(current) did not hide the notification")
	}
	if v.DismissCurrent() {
		t.Fatalf("DismissCurrent on hidden notification = true, want false")
	}
}

func TestView_Counts(t *testing.T) {
	v := View{Items: []todoapi.TodoItem{{ID: "a", Completed: true}, {ID: "b"}, {ID: "c"}}}
	done, pending := v.Counts()
	if done != 1 || pending != 2 {
		t.Fatalf("Counts = (%d, %d), want (1, 2)", done, pending)
	}
}

func TestSeverityString(t *testing.T) {
	if SeveritySuccess.String() != "success" || SeverityError.String() != "error" {
		t.Fatalf("Severity strings = %q/%q", SeveritySuccess, SeverityError)
	}
}
