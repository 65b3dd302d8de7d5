package viewer

import (
	"context"
	"sync"
)

// Jump records one GoToLocation command issued to the fake.
type Jump struct {
	DocumentID string
	Page       int
	Zoom       int
}

// Fake is a scriptable Viewer for tests and the simulation CLI. Set the
// selection and page before publishing a SELECTION_END event, then inspect
// the recorded jumps.
type Fake struct {
	mu       sync.Mutex
	selected string
	page     int
	jumps    []Jump
}

var _ Viewer = (*Fake)(nil)

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) SetSelection(text string, page int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = text
	f.page = page
}

func (f *Fake) SelectedContent(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selected, nil
}

func (f *Fake) CurrentPage(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page, nil
}

func (f *Fake) GoToLocation(ctx context.Context, documentID string, page int, zoom int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jumps = append(f.jumps, Jump{DocumentID: documentID, Page: page, Zoom: zoom})
	return nil
}

// Jumps returns a copy of the recorded GoToLocation commands.
func (f *Fake) Jumps() []Jump {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Jump, len(f.jumps))
	copy(out, f.jumps)
	return out
}
