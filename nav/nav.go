// Package nav builds the locale-aware header and footer shared by every page.
package nav

import (
	"net/url"
	"strings"

	"github.com/unknownriver/folio/i18n"
)

// Route is a top-level navigation entry.
type Route struct {
	Key  string // common.nav.<Key>
	Link string
}

// Routes are shown in the header in this order.
var Routes = []Route{
	{Key: "about", Link: "/about"},
	{Key: "project", Link: "/project"},
	{Key: "contact", Link: "/contact"},
	{Key: "posts", Link: "/posts"},
}

// SplitLocale strips a leading locale segment from path. Paths without one
// belong to the default locale. rest always starts with "/".
func SplitLocale(path string) (i18n.Locale, string) {
	segs := segments(path)
	if len(segs) > 0 {
		if loc, ok := i18n.ParseLocale(segs[0]); ok {
			return loc, "/" + strings.Join(segs[1:], "/")
		}
	}
	return i18n.Default, "/" + strings.Join(segs, "/")
}

// SwitchPath rewrites path under target, preserving the remaining segments.
// The default locale is emitted without a prefix and root paths never gain a
// trailing segment.
func SwitchPath(path string, target i18n.Locale) string {
	_, rest := SplitLocale(path)
	if rest == "/" {
		rest = ""
	}
	return target.Path(rest)
}

// IsActive reports whether link is the first segment of path once the
// locale prefix is removed.
func IsActive(path, link string) bool {
	_, rest := SplitLocale(path)
	a, b := segments(rest), segments(link)
	if len(b) == 0 {
		return len(a) == 0
	}
	return len(a) > 0 && a[0] == b[0]
}

// SafeNext reduces a user-supplied redirect target to a local path. Targets a
// browser could resolve to another host become "/".
func SafeNext(next string) string {
	u, err := url.Parse(strings.TrimSpace(next))
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	if strings.HasPrefix(u.Path, "//") || strings.ContainsFunc(u.Path, unsafePathRune) {
		return "/"
	}
	return u.Path
}

func unsafePathRune(r rune) bool {
	return r == '\\' || r < 0x20 || r == 0x7f
}

func segments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Link is a rendered header link.
type Link struct {
	Label  string
	Href   string
	Active bool
}

// LocaleOption is one entry of the language switcher.
type LocaleOption struct {
	Label  string
	Href   string
	Active bool
}

// Shell is the header/footer view model.
type Shell struct {
	Locale    i18n.Locale
	HomeHref  string
	Links     []Link
	Locales   []LocaleOption
	MenuLabel string
	Email     string
}

// BuildShell derives the header for path in locale. Locale switch entries
// point at the /lang endpoint so the choice can be remembered.
func BuildShell(store *i18n.Store, locale i18n.Locale, path, email string) Shell {
	sh := Shell{
		Locale:    locale,
		HomeHref:  locale.Path(""),
		MenuLabel: store.T(locale, i18n.NSCommon, "nav.menu"),
		Email:     email,
	}
	for _, r := range Routes {
		sh.Links = append(sh.Links, Link{
			Label:  store.T(locale, i18n.NSCommon, "nav."+r.Key),
			Href:   locale.Path(r.Link),
			Active: IsActive(path, r.Link),
		})
	}
	// KO before EN, matching the header layout.
	for _, loc := range []i18n.Locale{i18n.Ko, i18n.En} {
		sh.Locales = append(sh.Locales, LocaleOption{
			Label:  strings.ToUpper(loc.String()),
			Href:   "/lang/" + loc.String() + "?next=" + url.QueryEscape(SwitchPath(path, loc)),
			Active: loc == locale,
		})
	}
	return sh
}
