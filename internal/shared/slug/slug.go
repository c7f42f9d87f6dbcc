package slug

import (
	"regexp"

	gosimple "github.com/gosimple/slug"
)

// Pattern is what a stored slug must look like.
var Pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// FromName derives a URL slug; fallback is used when nothing usable remains.
func FromName(s, fallback string) string {
	out := gosimple.MakeLang(s, "tr")
	if out == "" {
		return fallback
	}
	return out
}

func Valid(s string) bool { return Pattern.MatchString(s) }
