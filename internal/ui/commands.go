package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/todo/internal/state"
	"github.com/five82/todo/internal/todoapi"
)

// Notification texts.
const (
	msgFetchFailed   = "Failed to fetch todos"
	msgAdded         = "Todo added successfully"
	msgAddFailed     = "Failed to add todo"
	msgDeleted       = "Todo deleted successfully"
	msgDeleteFailed  = "Failed to delete todo"
	msgUpdated       = "Todo updated successfully"
	msgUpdateFailed  = "Failed to update todo"
	msgToggled       = "Todo status updated"
	msgToggleFailed  = "Failed to update todo status"
	msgLoadedPattern = "Loaded %s"
)

// Messages

type itemsLoadedMsg struct {
	items []todoapi.TodoItem
	err   error
}

type itemCreatedMsg struct {
	item todoapi.TodoItem
	err  error
}

// updateKind tells an edit apart from a completion toggle.
type updateKind int

const (
	updateText updateKind = iota
	updateCompleted
)

type itemUpdatedMsg struct {
	kind updateKind
	id   string
	item todoapi.TodoItem
	err  error
}

type itemRemovedMsg struct {
	id  string
	err error
}

type noticeExpiredMsg struct {
	seq int
}

// Commands

func listCmd(ctx context.Context, svc todoapi.Service) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.ListAll(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func createCmd(ctx context.Context, svc todoapi.Service, text string) tea.Cmd {
	return func() tea.Msg {
		item, err := svc.Create(ctx, text)
		return itemCreatedMsg{item: item, err: err}
	}
}

func editCmd(ctx context.Context, svc todoapi.Service, id, text string) tea.Cmd {
	return func() tea.Msg {
		item, err := svc.Update(ctx, id, todoapi.SetText(text))
		return itemUpdatedMsg{kind: updateText, id: id, item: item, err: err}
	}
}

func toggleCmd(ctx context.Context, svc todoapi.Service, current todoapi.TodoItem) tea.Cmd {
	return func() tea.Msg {
		item, err := svc.Update(ctx, current.ID, todoapi.SetCompleted(!current.Completed))
		return itemUpdatedMsg{kind: updateCompleted, id: current.ID, item: item, err: err}
	}
}

func removeCmd(ctx context.Context, svc todoapi.Service, id string) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.Remove(ctx, id)
		return itemRemovedMsg{id: id, err: err}
	}
}

// Result handlers. Each one folds a confirmed response into the view or, on
// failure, leaves the items alone and reports the error.

func (m Model) handleLoaded(msg itemsLoadedMsg) (tea.Model, tea.Cmd) {
	m.finishRequest()
	if msg.err != nil {
		return m, m.notifyError(msgFetchFailed, msg.err)
	}
	var selectedID string
	if item, ok := m.selectedItem(); ok {
		selectedID = item.ID
	}
	m.view.ReplaceAll(msg.items)
	m.loaded = true
	m.selectID(selectedID)
	if m.mode == modeEdit && !m.view.Editing() {
		m.leaveInput()
	}
	return m, m.notify(fmt.Sprintf(msgLoadedPattern, plural(len(m.view.Items), "todo")), state.SeveritySuccess)
}

func (m Model) handleCreated(msg itemCreatedMsg) (tea.Model, tea.Cmd) {
	m.finishRequest()
	err := msg.err
	if err == nil {
		err = m.view.Prepend(msg.item)
	}
	if err != nil {
		return m, m.notifyError(msgAddFailed, err)
	}
	m.view.Draft = ""
	if m.mode == modeAdd {
		m.input.Reset()
	}
	m.selected = 0
	return m, m.notify(msgAdded, state.SeveritySuccess)
}

func (m Model) handleUpdated(msg itemUpdatedMsg) (tea.Model, tea.Cmd) {
	m.finishRequest()
	okText, failText := msgUpdated, msgUpdateFailed
	if msg.kind == updateCompleted {
		okText, failText = msgToggled, msgToggleFailed
	}

	err := msg.err
	found := false
	if err == nil {
		found, err = m.view.ReplaceByID(msg.id, msg.item)
	}
	if err != nil {
		cmd := m.notifyError(failText, err)
		// Reopen a failed edit so the draft is not lost.
		if msg.kind == updateText && m.view.EditingID == msg.id && m.mode == modeBrowse {
			m.mode = modeEdit
			m.input.SetValue(m.view.EditDraft)
			m.input.CursorEnd()
			return m, tea.Batch(cmd, m.input.Focus())
		}
		return m, cmd
	}

	if msg.kind == updateText && m.view.EditingID == msg.id && m.mode != modeEdit {
		m.view.CancelEdit()
	}
	if !found {
		m.logger.Debug("updated item no longer listed", "id", msg.id)
		return m, nil
	}
	return m, m.notify(okText, state.SeveritySuccess)
}

func (m Model) handleRemoved(msg itemRemovedMsg) (tea.Model, tea.Cmd) {
	m.finishRequest()
	if msg.err != nil {
		return m, m.notifyError(msgDeleteFailed, msg.err)
	}
	if m.mode == modeEdit && m.view.EditingID == msg.id {
		m.leaveInput()
	}
	m.view.RemoveByID(msg.id)
	m.clampSelection()
	return m, m.notify(msgDeleted, state.SeveritySuccess)
}

// notify shows message and schedules its automatic dismissal.
func (m *Model) notify(message string, severity state.Severity) tea.Cmd {
	seq := m.view.Notify(message, severity)
	return tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) notifyError(summary string, err error) tea.Cmd {
	m.logger.Error(summary, "err", err)
	return m.notify(fmt.Sprintf("%s: %s", summary, todoapi.Message(err)), state.SeverityError)
}
