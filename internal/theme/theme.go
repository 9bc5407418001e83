// Package theme is the Theme Store: the light/dark palette selection and the
// lipgloss styles derived from it.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"planify/internal/event"
)

// Mode is the palette selection.
type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Palette is the set of named colors a screen renders with.
type Palette struct {
	Background    lipgloss.Color
	Card          lipgloss.Color
	Surface       lipgloss.Color
	Primary       lipgloss.Color
	Text          lipgloss.Color
	TextSecondary lipgloss.Color
	Success       lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Border        lipgloss.Color
}

var (
	LightPalette = Palette{
		Background:    "#FFFFFF",
		Card:          "#FFFFFF",
		Surface:       "#F8F9FA",
		Primary:       "#E91E63",
		Text:          "#1A1A1A",
		TextSecondary: "#6C757D",
		Success:       "#28A745",
		Error:         "#DC3545",
		Warning:       "#FFC107",
		Border:        "#DEE2E6",
	}

	DarkPalette = Palette{
		Background:    "#121212",
		Card:          "#1E1E1E",
		Surface:       "#2A2A2A",
		Primary:       "#F06292",
		Text:          "#FFFFFF",
		TextSecondary: "#B0B0B0",
		Success:       "#4CAF50",
		Error:         "#F44336",
		Warning:       "#FF9800",
		Border:        "#404040",
	}
)

// ParseMode parses "light", "dark" or "auto". auto reports ok=false so the
// caller can fall back to detection.
func ParseMode(s string) (mode Mode, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, true, nil
	case "dark":
		return Dark, true, nil
	case "", "auto":
		return Light, false, nil
	default:
		return Light, false, fmt.Errorf("unknown theme: %s", s)
	}
}

// Detect resolves the configured preference. "auto" asks the terminal
// whether its background is dark.
func Detect(pref string) Mode {
	mode, ok, err := ParseMode(pref)
	if err == nil && ok {
		return mode
	}
	if lipgloss.HasDarkBackground() {
		return Dark
	}
	return Light
}

// Store holds the current mode. It is not persisted across runs.
type Store struct {
	mu      sync.RWMutex
	mode    Mode
	changes event.Bus[Mode]
}

// New creates a Store starting in mode.
func New(mode Mode) *Store {
	return &Store{mode: mode}
}

// Mode returns the current mode.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Set switches to mode and notifies subscribers if it changed.
func (s *Store) Set(mode Mode) {
	s.mu.Lock()
	changed := s.mode != mode
	s.mode = mode
	s.mu.Unlock()
	if changed {
		s.changes.Publish(mode)
	}
}

// Toggle flips between light and dark and returns the new mode.
func (s *Store) Toggle() Mode {
	s.mu.Lock()
	if s.mode == Dark {
		s.mode = Light
	} else {
		s.mode = Dark
	}
	mode := s.mode
	s.mu.Unlock()
	s.changes.Publish(mode)
	return mode
}

// Palette returns the colors for the current mode.
func (s *Store) Palette() Palette {
	if s.Mode() == Dark {
		return DarkPalette
	}
	return LightPalette
}

// Styles returns the styles for the current mode.
func (s *Store) Styles() Styles {
	return NewStyles(s.Palette())
}

// OnChange subscribes fn to mode switches.
func (s *Store) OnChange(fn func(Mode)) *event.Subscription {
	return s.changes.Subscribe(fn)
}
