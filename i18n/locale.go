// Package i18n resolves URL locale segments and serves translated content
// from embedded JSON catalogs.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported two-letter language tag.
type Locale string

const (
	En Locale = "en"
	Ko Locale = "ko"

	// Default is served without a path prefix.
	Default = En
)

// Supported lists locales in display order.
var Supported = []Locale{En, Ko}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Korean})

// ParseLocale accepts only members of the supported set.
func ParseLocale(segment string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(segment))) {
	case En:
		return En, true
	case Ko:
		return Ko, true
	}
	return "", false
}

// ResolveLocale returns the locale named by segment, or Default.
func ResolveLocale(segment string) Locale {
	if l, ok := ParseLocale(segment); ok {
		return l
	}
	return Default
}

// MatchAcceptLanguage negotiates a supported locale from an Accept-Language
// header value.
func MatchAcceptLanguage(header string) Locale {
	header = strings.TrimSpace(header)
	if header == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

func (l Locale) String() string { return string(l) }

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	if l == Ko {
		return language.Korean
	}
	return language.English
}

// OpenGraph returns the og:locale value.
func (l Locale) OpenGraph() string {
	if l == Ko {
		return "ko_KR"
	}
	return "en_US"
}

// Prefix is the URL prefix for l: empty for Default.
func (l Locale) Prefix() string {
	if l == Default || l == "" {
		return ""
	}
	return "/" + string(l)
}

// Path prefixes route with the locale segment. route is "" or starts with "/".
func (l Locale) Path(route string) string {
	route = strings.TrimRight(route, "/")
	p := l.Prefix() + route
	if p == "" {
		return "/"
	}
	return p
}

// Other returns the supported locales except l.
func (l Locale) Other() []Locale {
	out := make([]Locale, 0, len(Supported)-1)
	for _, s := range Supported {
		if s != l {
			out = append(out, s)
		}
	}
	return out
}
