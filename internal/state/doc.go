// Package state holds the todo view's local state and the folds that apply
// server responses to it.
//
// # Overview
//
// View is a plain value owned by the UI model. Nothing in this package talks
// to the network; callers perform a todoapi call first and only then fold its
// result in:
//
//	items, err := client.ListAll(ctx)    → view.ReplaceAll(items)
//	item, err := client.Create(ctx, t)   → view.Prepend(item); view.Draft = ""
//	item, err := client.Update(ctx, ...) → view.ReplaceByID(id, item)
//	_, err := client.Remove(ctx, id)     → view.RemoveByID(id)
//
// On error the caller leaves Items untouched and raises a notification.
//
// # Ordering
//
// ReplaceAll keeps the server's order. Prepend puts new items first.
// ReplaceByID keeps the position of the replaced item. RemoveByID closes the
// gap. Each fold builds a new slice, so earlier copies of a View never see
// later changes.
//
// # Validation
//
// Prepend and ReplaceByID refuse items without an id, and ReplaceByID also
// refuses an item whose id differs from the requested one. Both return a
// *todoapi.InvalidResponseError, leaving Items unchanged.
//
// # Edit Mode
//
// At most one item is edited at a time. BeginEdit on a second item silently
// replaces the first item's draft. Removing or re-listing away the edited item
// cancels the edit.
//
// # Notifications
//
// Notify replaces the current message and bumps Seq. Auto-dismiss timers carry
// the Seq they were started for, and Dismiss ignores a Seq that is no longer
// current.
package state
