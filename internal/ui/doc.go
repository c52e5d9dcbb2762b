// Package ui provides the terminal interface for the todo client.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds a state.View and talks to the
// remote service only through todoapi.Service, so tests drive it with a fake.
//
// Every remote call runs as a tea.Cmd and comes back as a message:
//
//   - itemsLoadedMsg: initial load and reload (r)
//   - itemCreatedMsg: add (a, then enter)
//   - itemUpdatedMsg: edit save (enter in edit mode) and toggle (space or x)
//   - itemRemovedMsg: delete (d)
//
// Update folds each message serially. Items change only after the service
// confirms a mutation; a failed call leaves them as they were and shows an
// error notification instead.
//
// # Modes
//
// Keys go to one of three places: the list (browse), the draft input (add)
// or the inline edit input (edit). esc leaves add mode keeping the draft,
// and leaves edit mode discarding the edit draft.
//
// # Notifications
//
// One notification is shown at a time above the footer. Each is dismissed
// after state.NotificationTTL by a tea.Tick carrying its sequence number, so
// an old timer never hides a newer message. esc dismisses it early.
//
// # Overlays
//
//   - ? shows the key reference built from keyMap.FullHelp
//   - L tails the client log file through the logtail package
//
// # Themes
//
// Nightfox, Kanagawa and Slate palettes. T cycles them and t hides or shows
// creation dates; both are saved to the prefs file.
package ui
