// Package viewer is the boundary to the external document renderer. The
// renderer is a black box that emits events on the bus and answers the query
// API below; nothing else about it is assumed.
package viewer

import "context"

// Viewer is the query/command surface of the rendering engine. Queries are
// asynchronous in the renderer, hence the contexts.
type Viewer interface {
	// SelectedContent returns the currently selected text, empty when the
	// selection collapsed before the query resolved.
	SelectedContent(ctx context.Context) (string, error)

	// CurrentPage returns the 0-based index of the visible page.
	CurrentPage(ctx context.Context) (int, error)

	// GoToLocation scrolls the given document view to a page at a zoom
	// percentage.
	GoToLocation(ctx context.Context, documentID string, page int, zoom int) error
}
