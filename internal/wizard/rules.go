package wizard

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Checker accumulates field errors for one step. The first failing rule of
// a field wins; later rules on the same field are skipped.
type Checker struct {
	data FormData
	errs FieldErrors
	loc  *time.Location
}

func Check(data FormData) *Checker {
	return &Checker{data: data, errs: FieldErrors{}, loc: time.UTC}
}

// In sets the location used to compare date fields.
func (c *Checker) In(loc *time.Location) *Checker {
	if loc != nil {
		c.loc = loc
	}
	return c
}

func (c *Checker) Errors() FieldErrors { return c.errs }

func (c *Checker) failed(key string) bool {
	_, ok := c.errs[key]
	return ok
}

func (c *Checker) fail(key, msg string) *Checker {
	if !c.failed(key) {
		c.errs[key] = msg
	}
	return c
}

// Required fails when the trimmed value is empty.
func (c *Checker) Required(key, msg string) *Checker {
	if Str(c.data, key) == "" {
		return c.fail(key, msg)
	}
	return c
}

// Pattern fails when a non-empty value does not match re.
func (c *Checker) Pattern(key string, re *regexp.Regexp, msg string) *Checker {
	if s := Str(c.data, key); s != "" && !re.MatchString(s) {
		return c.fail(key, msg)
	}
	return c
}

// MinLen fails when a non-empty value is shorter than n runes.
func (c *Checker) MinLen(key string, n int, msg string) *Checker {
	if s := Str(c.data, key); s != "" && len([]rune(s)) < n {
		return c.fail(key, msg)
	}
	return c
}

// MaxLen fails when a value is longer than n runes.
func (c *Checker) MaxLen(key string, n int, msg string) *Checker {
	if s := Str(c.data, key); len([]rune(s)) > n {
		return c.fail(key, msg)
	}
	return c
}

// Numeric fails when a non-empty value does not parse as a number.
func (c *Checker) Numeric(key, msg string) *Checker {
	if _, _, err := Number(c.data, key); err != nil {
		return c.fail(key, msg)
	}
	return c
}

// Positive fails when a present value is <= 0.
func (c *Checker) Positive(key, msg string) *Checker {
	if n, ok, err := Number(c.data, key); err == nil && ok && n <= 0 {
		return c.fail(key, msg)
	}
	return c
}

// NonNegative fails when a present value is < 0.
func (c *Checker) NonNegative(key, msg string) *Checker {
	if n, ok, err := Number(c.data, key); err == nil && ok && n < 0 {
		return c.fail(key, msg)
	}
	return c
}

// AtMost fails when a present value exceeds max.
func (c *Checker) AtMost(key string, max float64, msg string) *Checker {
	if n, ok, err := Number(c.data, key); err == nil && ok && n > max {
		return c.fail(key, msg)
	}
	return c
}

// OneOf fails when a non-empty value is not one of allowed.
func (c *Checker) OneOf(key string, allowed []string, msg string) *Checker {
	s := Str(c.data, key)
	if s == "" {
		return c
	}
	for _, a := range allowed {
		if s == a {
			return c
		}
	}
	return c.fail(key, msg)
}

// Email fails when a non-empty value is not an e-mail address.
func (c *Checker) Email(key, msg string) *Checker {
	if s := Str(c.data, key); s != "" && validate.Var(s, "email") != nil {
		return c.fail(key, msg)
	}
	return c
}

// Date fails when a non-empty value does not parse as a date.
func (c *Checker) Date(key, msg string) *Checker {
	if s := Str(c.data, key); s != "" {
		if _, err := ParseDate(s, c.loc); err != nil {
			return c.fail(key, msg)
		}
	}
	return c
}

// DateAfter fails when key is present and not strictly after ref.
// Nothing is reported while ref is blank or unparsable.
func (c *Checker) DateAfter(key, ref, msg string) *Checker {
	s, r := Str(c.data, key), Str(c.data, ref)
	if s == "" || r == "" {
		return c
	}
	t, err := ParseDate(s, c.loc)
	if err != nil {
		return c
	}
	rt, err := ParseDate(r, c.loc)
	if err != nil {
		return c
	}
	if !t.After(rt) {
		return c.fail(key, msg)
	}
	return c
}

// NotEqual fails when both fields are present and equal.
func (c *Checker) NotEqual(key, other, msg string) *Checker {
	a, b := Str(c.data, key), Str(c.data, other)
	if a != "" && strings.EqualFold(a, b) {
		return c.fail(key, msg)
	}
	return c
}

// When applies rules only if cond holds.
func (c *Checker) When(cond bool, rules func(*Checker)) *Checker {
	if cond {
		rules(c)
	}
	return c
}

// Custom records msg on key when bad is true.
func (c *Checker) Custom(key string, bad bool, msg string) *Checker {
	if bad {
		return c.fail(key, msg)
	}
	return c
}
