package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

// Currency accepts ISO-4217 style codes (3 letters). The portal only bills
// in EUR today but the order endpoint passes the code through.
func Currency(field, value string, v Violations) {
	c := strings.TrimSpace(value)
	if len(c) != 3 {
		v[field] = "invalid_currency"
		return
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			v[field] = "invalid_currency"
			return
		}
	}
}

// OneOf restricts value to an allowed set (empty value handled by Required).
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "not_allowed"
}
