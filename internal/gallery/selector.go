// Package gallery holds the tab state and view model of the card gallery.
package gallery

import (
	"fmt"
	"time"

	"github.com/mtlprog/sqlgallery/internal/domain"
)

// DefaultTransition is the show/hide duration used when none is configured.
const DefaultTransition = 200 * time.Millisecond

// Selector tracks the active category. Exactly one category is active at
// any time; it starts at the first catalog key. Hidden categories keep
// their content, only the visibility flag changes.
//
// A Selector is owned by a single view session and is not safe for
// concurrent use.
type Selector struct {
	names      []string
	active     int
	visible    []bool
	transition time.Duration
}

// NewSelector creates a Selector positioned on the first category.
// A non-positive transition falls back to DefaultTransition.
func NewSelector(cat *domain.Catalog, transition time.Duration) *Selector {
	if transition <= 0 {
		transition = DefaultTransition
	}
	s := &Selector{
		names:      cat.Names(),
		visible:    make([]bool, cat.Len()),
		transition: transition,
	}
	s.visible[0] = true
	return s
}

// Active returns the active category name.
func (s *Selector) Active() string {
	return s.names[s.active]
}

// Names returns the tab names in display order.
func (s *Selector) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Select makes name the active category. Selecting the active category is
// a no-op. Unknown names are rejected and leave the state untouched.
func (s *Selector) Select(name string) error {
	for i, n := range s.names {
		if n == name {
			s.activate(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", domain.ErrCategoryNotFound, name)
}

// Next activates the following tab, wrapping around.
func (s *Selector) Next() {
	s.activate((s.active + 1) % len(s.names))
}

// Prev activates the preceding tab, wrapping around.
func (s *Selector) Prev() {
	s.activate((s.active - 1 + len(s.names)) % len(s.names))
}

// Visible reports whether the category is currently shown.
func (s *Selector) Visible(name string) bool {
	for i, n := range s.names {
		if n == name {
			return s.visible[i]
		}
	}
	return false
}

// Transition returns the show/hide transition duration.
func (s *Selector) Transition() time.Duration {
	return s.transition
}

func (s *Selector) activate(i int) {
	s.visible[s.active] = false
	s.active = i
	s.visible[i] = true
}
