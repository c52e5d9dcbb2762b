package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/todo/internal/todoapi"
)

// NotificationTTL is how long a notification stays up without user action.
const NotificationTTL = 3 * time.Second

// Severity classifies a notification.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "success"
}

// Notification is the single transient message shown to the user.
type Notification struct {
	Message  string
	Severity Severity
	Visible  bool
	Seq      int // increases with every Notify
}

// View is the todo list as presented to the user. Items only ever change by
// folding in a confirmed server response.
type View struct {
	Items     []todoapi.TodoItem
	Draft     string
	EditingID string
	EditDraft string
	Notice    Notification
}

// Find returns the item with id.
func (v View) Find(id string) (todoapi.TodoItem, bool) {
	if i := v.indexOf(id); i >= 0 {
		return v.Items[i], true
	}
	return todoapi.TodoItem{}, false
}

// ReplaceAll swaps in a freshly listed collection. Later duplicates of an id
// are dropped so ids stay unique.
func (v *View) ReplaceAll(items []todoapi.TodoItem) {
	out := make([]todoapi.TodoItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	v.Items = out
	if v.EditingID != "" && v.indexOf(v.EditingID) < 0 {
		v.CancelEdit()
	}
}

// Prepend puts a newly created item at the front of the list.
func (v *View) Prepend(item todoapi.TodoItem) error {
	if err := requireID("add todo", item); err != nil {
		return err
	}
	out := make([]todoapi.TodoItem, 0, len(v.Items)+1)
	out = append(out, item)
	for _, existing := range v.Items {
		if existing.ID != item.ID {
			out = append(out, existing)
		}
	}
	v.Items = out
	return nil
}

// ReplaceByID swaps the stored item with the requested id for item, keeping
// its position. item must carry the same id. It reports false when no such
// item is present any more.
func (v *View) ReplaceByID(id string, item todoapi.TodoItem) (bool, error) {
	if err := requireID("update todo", item); err != nil {
		return false, err
	}
	if item.ID != id {
		return false, &todoapi.InvalidResponseError{
			Op:     "update todo",
			Reason: fmt.Sprintf("id %q does not match requested %q", item.ID, id),
		}
	}
	i := v.indexOf(id)
	if i < 0 {
		return false, nil
	}
	out := make([]todoapi.TodoItem, len(v.Items))
	copy(out, v.Items)
	out[i] = item
	v.Items = out
	return true, nil
}

// RemoveByID drops the item with id and reports whether it was present.
func (v *View) RemoveByID(id string) bool {
	i := v.indexOf(id)
	if i < 0 {
		return false
	}
	out := make([]todoapi.TodoItem, 0, len(v.Items)-1)
	out = append(out, v.Items[:i]...)
	out = append(out, v.Items[i+1:]...)
	v.Items = out
	if v.EditingID == id {
		v.CancelEdit()
	}
	return true
}

// CanAdd reports whether the draft holds something worth sending.
func (v View) CanAdd() bool {
	return strings.TrimSpace(v.Draft) != ""
}

// BeginEdit puts the item with id into edit mode, discarding any other
// unsaved edit.
func (v *View) BeginEdit(id string) bool {
	item, ok := v.Find(id)
	if !ok {
		return false
	}
	v.EditingID = item.ID
	v.EditDraft = item.Text
	return true
}

// Editing reports whether an edit is in progress.
func (v View) Editing() bool {
	return v.EditingID != ""
}

// CancelEdit leaves edit mode and drops the draft.
func (v *View) CancelEdit() {
	v.EditingID = ""
	v.EditDraft = ""
}

// Notify replaces the current notification and returns its sequence number.
func (v *View) Notify(message string, severity Severity) int {
	v.Notice = Notification{
		Message:  message,
		Severity: severity,
		Visible:  true,
		Seq:      v.Notice.Seq + 1,
	}
	return v.Notice.Seq
}

// Dismiss hides the notification numbered seq. A stale seq is ignored so an
// old timer never hides a newer message.
func (v *View) Dismiss(seq int) bool {
	if !v.Notice.Visible || v.Notice.Seq != seq {
		return false
	}
	v.Notice.Visible = false
	return true
}

// DismissCurrent hides whatever notification is showing.
func (v *View) DismissCurrent() bool {
	return v.Dismiss(v.Notice.Seq)
}

// Counts returns how many items are done and pending.
func (v View) Counts() (done, pending int) {
	for _, item := range v.Items {
		if item.Completed {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}

func (v View) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range v.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func requireID(op string, item todoapi.TodoItem) error {
	if strings.TrimSpace(item.ID) == "" {
		return &todoapi.InvalidResponseError{Op: op, Reason: "missing id"}
	}
	return nil
}
