package signup

import (
	"fmt"
	"unicode/utf8"
)

// Tier is a strength band.
type Tier int

const (
	TierNone Tier = iota
	TierWeak
	TierMedium
	TierStrong
)

// String returns the tier's name.
func (t Tier) String() string {
	switch t {
	case TierWeak:
		return "weak"
	case TierMedium:
		return "medium"
	case TierStrong:
		return "strong"
	}
	return ""
}

// Class returns the style class of the strength bar fill, "" for TierNone.
func (t Tier) Class() string {
	if t == TierNone {
		return ""
	}
	return "strength-" + t.String()
}

// Width returns the bar width in percent.
func (t Tier) Width() int {
	switch t {
	case TierWeak:
		return 33
	case TierMedium:
		return 66
	case TierStrong:
		return 100
	}
	return 0
}

// Strength is the scored password. The zero value is the empty password.
type Strength struct {
	Score int  `json:"score"`
	Width int  `json:"width"`
	Tier  Tier `json:"tier"`
}

// CalculateStrength scores a password. Length earns 2 points from 8 runes
// or 1 point from 6; each of lowercase, uppercase and digit earns 1; any
// other character earns 2. Character classes are ASCII, so a non-ASCII
// letter counts as "other". The score is cosmetic.
func CalculateStrength(password string) Strength {
	if password == "" {
		return Strength{}
	}

	score := 0
	switch n := utf8.RuneCountInString(password); {
	case n >= 8:
		score += 2
	case n >= 6:
		score++
	}

	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	if lower {
		score++
	}
	if upper {
		score++
	}
	if digit {
		score++
	}
	if other {
		score += 2
	}

	tier := TierStrong
	switch {
	case score <= 2:
		tier = TierWeak
	case score <= 5:
		tier = TierMedium
	}
	return Strength{Score: score, Width: tier.Width(), Tier: tier}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name; "" is TierNone.
func (t *Tier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*t = TierNone
	case "weak":
		*t = TierWeak
	case "medium":
		*t = TierMedium
	case "strong":
		*t = TierStrong
	default:
		return fmt.Errorf("signup: unknown strength tier %q", text)
	}
	return nil
}
