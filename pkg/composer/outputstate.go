package composer

import "sync"

// RenderedOutput records what a page's output view currently shows, so
// the view can be torn down and rebuilt without drift.
type RenderedOutput struct {
	Segments []Segment
	Text     string
}

// OutputState tracks the last rendered output per page.
type OutputState struct {
	mu    sync.RWMutex
	pages map[int]RenderedOutput
}

// NewOutputState returns an empty tracker.
func NewOutputState() *OutputState {
	return &OutputState{pages: make(map[int]RenderedOutput)}
}

// Set records the rendered sequence for a page, replacing any previous one.
func (s *OutputState) Set(pageID int, segs []Segment, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]Segment, len(segs))
	copy(copied, segs)
	s.pages[pageID] = RenderedOutput{Segments: copied, Text: text}
}

// Get returns the last rendered output for a page.
func (s *OutputState) Get(pageID int) (RenderedOutput, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, ok := s.pages[pageID]
	return out, ok
}

// Clear forgets a page's rendered output, e.g. after page deletion.
func (s *OutputState) Clear(pageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, pageID)
}
