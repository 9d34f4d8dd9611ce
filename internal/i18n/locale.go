// Package i18n holds the closed set of site locales and their UI strings.
package i18n

import (
	"context"
	"strings"
)

// Locale is a supported site language code.
type Locale string

const (
	English  Locale = "en"
	Japanese Locale = "ja"
)

// Default is used whenever no valid locale can be determined.
const Default = English

var supported = []Locale{English, Japanese}

// Supported returns the supported locales in display order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Parse returns the locale for s, or false when s is not a supported code.
// Matching is exact: "EN" and "en-US" are not accepted.
func Parse(s string) (Locale, bool) {
	for _, l := range supported {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// ParseOr returns the locale for s, falling back to def.
func ParseOr(s string, def Locale) Locale {
	if l, ok := Parse(strings.TrimSpace(s)); ok {
		return l
	}
	return def
}

// IsSupported reports whether s is a supported locale code.
func IsSupported(s string) bool {
	_, ok := Parse(s)
	return ok
}

func (l Locale) String() string { return string(l) }

type ctxKey struct{}

// WithLocale stores the resolved locale in ctx.
func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the locale stored by WithLocale, or Default.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(ctxKey{}).(Locale); ok {
		return l
	}
	return Default
}
