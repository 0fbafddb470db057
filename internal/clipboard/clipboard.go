// Package clipboard provides copier.Clipboard implementations.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the platform has no usable clipboard
// utility (for example a headless Linux box without xclip, xsel or
// wl-clipboard).
var ErrUnsupported = errors.New("system clipboard unavailable")

// System writes to the operating system clipboard.
type System struct{}

// Available reports whether a system clipboard backend was found.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the system clipboard contents with text.
func (s System) WriteText(_ context.Context, text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard. The zero value is ready to use.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
	err    error
}

// WriteText stores text, or returns the configured failure.
func (m *Memory) WriteText(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.text = text
	m.writes++
	return nil
}

// Text returns the current contents.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns how many writes succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Fail makes subsequent writes return err. A nil err restores writes.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
