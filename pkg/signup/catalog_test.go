package signup

import (
	"testing"

	"golang.org/x/text/language"
)

func TestCatalogsCoverEveryViolation(t *testing.T) {
	for _, cat := range []*Catalog{Russian(), English()} {
		for _, v := range Violations {
			if msg := cat.Message(v); msg == "" || msg == string(v) {
				t.Errorf("%s: no text for %s", cat.Tag(), v)
			}
		}
		for _, tier := range []Tier{TierWeak, TierMedium, TierStrong} {
			if cat.StrengthLabel(tier) == "" {
				t.Errorf("%s: no label for %v", cat.Tag(), tier)
			}
		}
		for _, f := range Fields {
			if cat.Placeholder(f) == "" {
				t.Errorf("%s: no placeholder for %s", cat.Tag(), f)
			}
		}
		if cat.Message(NoViolation) != "" {
			t.Errorf("%s: NoViolation must have no text", cat.Tag())
		}
	}
}

func TestRussianTexts(t *testing.T) {
	ru := Russian()
	if got := ru.Message(PasswordMismatch); got != "Пароли не совпадают" {
		t.Errorf("unexpected mismatch text %q", got)
	}
	if got := ru.StrengthLabel(TierStrong); got != "Сильный" {
		t.Errorf("unexpected strong label %q", got)
	}
	if got := ru.Message("custom.key"); got != "custom.key" {
		t.Errorf("unknown keys fall through, got %q", got)
	}
}

func TestCatalogFor(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"", language.Russian},
		{"ru-RU,ru;q=0.9", language.Russian},
		{"en-US,en;q=0.9", language.English},
		{"de-DE,en;q=0.5", language.English},
		{"fr-FR", language.Russian},
		{"not a header;;", language.Russian},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := CatalogFor(tt.header, nil).Tag(); got != tt.want {
				t.Errorf("CatalogFor(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}

	if CatalogFor("fr", English()) != English() {
		t.Error("fallback should be used when nothing matches")
	}
}

func TestLookupCatalog(t *testing.T) {
	if c, ok := LookupCatalog("en-GB"); !ok || c != English() {
		t.Error("en-GB should resolve to English")
	}
	if c, ok := LookupCatalog("ru"); !ok || c != Russian() {
		t.Error("ru should resolve to Russian")
	}
	if _, ok := LookupCatalog("ja"); ok {
		t.Error("ja has no catalog")
	}
	if _, ok := LookupCatalog("???"); ok {
		t.Error("malformed tags are rejected")
	}
}
