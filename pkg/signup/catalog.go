package signup

import (
	"golang.org/x/text/language"
)

// Catalog is the fixed text of the form in one language.
type Catalog struct {
	tag          language.Tag
	messages     map[Violation]string
	tiers        map[Tier]string
	placeholders map[Field]string
	title        string
	submit       string
}

// Tag returns the catalog's language.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Message returns the text for v, "" for NoViolation. An unknown key is
// returned as is.
func (c *Catalog) Message(v Violation) string {
	if v == NoViolation {
		return ""
	}
	if msg, ok := c.messages[v]; ok {
		return msg
	}
	return string(v)
}

// StrengthLabel returns the label of t, "" for TierNone.
func (c *Catalog) StrengthLabel(t Tier) string {
	return c.tiers[t]
}

// Placeholder returns the placeholder text of f.
func (c *Catalog) Placeholder(f Field) string {
	return c.placeholders[f]
}

// Title returns the page title.
func (c *Catalog) Title() string {
	return c.title
}

// SubmitLabel returns the submit button's text.
func (c *Catalog) SubmitLabel() string {
	return c.submit
}

var russian = &Catalog{
	tag: language.Russian,
	messages: map[Violation]string{
		EmailTooLong:     "Email слишком длинный",
		EmailDoubleDot:   "Email содержит две точки подряд",
		EmailRequired:    "Email обязателен для заполнения",
		EmailInvalid:     "Введите корректный email адрес",
		PasswordRequired: "Пароль обязателен для заполнения",
		PasswordTooShort: "Пароль слишком короткий",
		PasswordInvalid:  "Неверный пароль. Должно быть не менее 8 символов",
		PasswordMismatch: "Пароли не совпадают",
	},
	tiers: map[Tier]string{
		TierWeak:   "Слабый",
		TierMedium: "Средний",
		TierStrong: "Сильный",
	},
	placeholders: map[Field]string{
		FieldEmail:          "Введите почту",
		FieldPassword:       "Введите пароль",
		FieldRepeatPassword: "Подтвердите пароль",
	},
	title:  "Регистрация",
	submit: "Зарегистрироваться",
}

var english = &Catalog{
	tag: language.English,
	messages: map[Violation]string{
		EmailTooLong:     "Email is too long",
		EmailDoubleDot:   "Email contains two dots in a row",
		EmailRequired:    "Email is required",
		EmailInvalid:     "Enter a valid email address",
		PasswordRequired: "Password is required",
		PasswordTooShort: "Password is too short",
		PasswordInvalid:  "Invalid password. Must be at least 8 characters",
		PasswordMismatch: "Passwords do not match",
	},
	tiers: map[Tier]string{
		TierWeak:   "Weak",
		TierMedium: "Medium",
		TierStrong: "Strong",
	},
	placeholders: map[Field]string{
		FieldEmail:          "Enter email",
		FieldPassword:       "Enter password",
		FieldRepeatPassword: "Confirm password",
	},
	title:  "Sign up",
	submit: "Sign up",
}

// catalogs is ordered by preference for the matcher; the first entry is the
// fallback.
var catalogs = []*Catalog{russian, english}

var matcher = language.NewMatcher([]language.Tag{language.Russian, language.English})

// Russian returns the Russian catalog.
func Russian() *Catalog { return russian }

// English returns the English catalog.
func English() *Catalog { return english }

// LookupCatalog returns the catalog for a BCP 47 tag such as "ru" or
// "en-GB". ok is false when the tag does not parse or matches neither
// language.
func LookupCatalog(locale string) (c *Catalog, ok bool) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, false
	}
	return catalogs[idx], true
}

// CatalogFor picks a catalog from an Accept-Language header, falling back
// to fallback (or Russian when fallback is nil) when nothing matches.
func CatalogFor(acceptLanguage string, fallback *Catalog) *Catalog {
	if fallback == nil {
		fallback = russian
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return catalogs[idx]
}
