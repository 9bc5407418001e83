package i18n_test

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"planify/internal/i18n"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pref   string
		want   language.Tag
		wantOK bool
	}{
		{"en", language.English, true},
		{"en-US", language.English, true},
		{"pt", language.BrazilianPortuguese, true},
		{"pt-BR", language.BrazilianPortuguese, true},
		{"pt_BR.UTF-8", language.BrazilianPortuguese, true},
		{"C", language.English, false},
		{"", language.English, false},
		{"ja", language.English, false},
	}

	for _, tt := range tests {
		t.Run(tt.pref, func(t *testing.T) {
			got, ok := i18n.Match(tt.pref)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Match(%q) = %v, %v; want %v, %v", tt.pref, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStore_Translate(t *testing.T) {
	s := i18n.New("en")
	if got := s.T(i18n.ValPasswordsDiffer); got != "Passwords don't match" {
		t.Errorf("unexpected english text %q", got)
	}

	if _, err := s.Set("pt-BR"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.T(i18n.AuthNoActiveSession); got != "Nenhum usuário logado" {
		t.Errorf("unexpected portuguese text %q", got)
	}
	if got := s.T(i18n.Welcome, "Ana"); got != "Bem-vindo(a), Ana!" {
		t.Errorf("unexpected formatted text %q", got)
	}
}

func TestStore_SetUnsupportedKeepsCurrent(t *testing.T) {
	s := i18n.New("pt-BR")

	if _, err := s.Set("de"); err == nil {
		t.Fatal("expected error for unsupported language")
	}
	if s.Tag() != language.BrazilianPortuguese {
		t.Errorf("expected language unchanged, got %v", s.Tag())
	}
}

func TestStore_OnChange(t *testing.T) {
	s := i18n.New("en")
	var got []language.Tag
	sub := s.OnChange(func(tag language.Tag) { got = append(got, tag) })
	defer sub.Unsubscribe()

	s.Set("pt")
	s.Set("pt-BR")
	s.Set("en")

	if len(got) != 2 {
		t.Fatalf("expected 2 change events, got %v", got)
	}
	if got[0] != language.BrazilianPortuguese || got[1] != language.English {
		t.Errorf("unexpected events %v", got)
	}
}

func TestTablesAreComplete(t *testing.T) {
	en := i18n.New("en")
	pt := i18n.New("pt-BR")
	for _, key := range []string{
		i18n.GreetingMorning, i18n.StatsLine, i18n.QuoteUnavailable,
		i18n.ReminderTitle, i18n.ReminderBody, i18n.HomeHelp,
	} {
		if en.T(key) == key {
			t.Errorf("english missing %s", key)
		}
		if pt.T(key) == key {
			t.Errorf("portuguese missing %s", key)
		}
	}
}

func TestStore_Greeting(t *testing.T) {
	day := func(h int) time.Time { return time.Date(2026, 5, 4, h, 30, 0, 0, time.UTC) }
	tests := []struct {
		locale string
		hour   int
		want   string
	}{
		{"en", 8, "Good morning, Ana!"},
		{"en", 12, "Good afternoon, Ana!"},
		{"en", 17, "Good afternoon, Ana!"},
		{"en", 18, "Good evening, Ana!"},
		{"pt-BR", 0, "Bom dia, Ana!"},
		{"pt-BR", 21, "Boa noite, Ana!"},
	}
	for _, tt := range tests {
		s := i18n.New(tt.locale)
		if got := s.Greeting(day(tt.hour), "Ana"); got != tt.want {
			t.Errorf("Greeting(%s, %dh) = %q, want %q", tt.locale, tt.hour, got, tt.want)
		}
	}
}
