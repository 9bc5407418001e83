// Package i18n is the Locale Store: the selected language and the message
// catalog every user-facing string is looked up in.
package i18n

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"planify/internal/event"
)

var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var (
	matcher = language.NewMatcher(supported)
	cat     = mustCatalog()
)

func mustCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, table := range map[language.Tag]map[string]string{
		language.English:             english,
		language.BrazilianPortuguese: brazilianPortuguese,
	} {
		for key, msg := range table {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

// Supported returns the selectable language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Match resolves a user preference ("pt", "pt_BR.UTF-8", "en-US") to a
// supported tag. ok is false when nothing matched and English was chosen.
func Match(pref string) (tag language.Tag, ok bool) {
	pref = normalize(pref)
	if pref == "" {
		return language.English, false
	}
	_, idx, conf := matcher.Match(language.Make(pref))
	if conf == language.No {
		return language.English, false
	}
	return supported[idx], true
}

// normalize turns POSIX locale names into BCP 47.
func normalize(pref string) string {
	pref = strings.TrimSpace(pref)
	if i := strings.IndexAny(pref, ".@"); i >= 0 {
		pref = pref[:i]
	}
	if pref == "C" || pref == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(pref, "_", "-")
}

// Store holds the process-wide language selection.
type Store struct {
	mu      sync.RWMutex
	tag     language.Tag
	printer *message.Printer
	changes event.Bus[language.Tag]
}

// New creates a Store initialized from pref. Unsupported preferences fall
// back to English.
func New(pref string) *Store {
	tag, _ := Match(pref)
	return &Store{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag returns the current language.
func (s *Store) Tag() language.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tag
}

// Set switches the language. It fails for preferences no supported tag
// matches, leaving the current selection unchanged.
func (s *Store) Set(pref string) (language.Tag, error) {
	tag, ok := Match(pref)
	if !ok {
		return s.Tag(), fmt.Errorf("unsupported language: %s", pref)
	}
	s.mu.Lock()
	changed := tag != s.tag
	s.tag = tag
	s.printer = message.NewPrinter(tag, message.Catalog(cat))
	s.mu.Unlock()

	if changed {
		s.changes.Publish(tag)
	}
	return tag, nil
}

// T looks up key in the current language and formats it with args.
func (s *Store) T(key string, args ...any) string {
	s.mu.RLock()
	p := s.printer
	s.mu.RUnlock()
	return p.Sprintf(key, args...)
}

// OnChange subscribes fn to language switches.
func (s *Store) OnChange(fn func(language.Tag)) *event.Subscription {
	return s.changes.Subscribe(fn)
}

// Greeting returns the time-of-day greeting for name: morning before noon,
// afternoon before 18h, evening after that.
func (s *Store) Greeting(now time.Time, name string) string {
	key := GreetingEvening
	switch h := now.Hour(); {
	case h < 12:
		key = GreetingMorning
	case h < 18:
		key = GreetingAfternoon
	}
	return s.T(GreetingLine, s.T(key), name)
}
