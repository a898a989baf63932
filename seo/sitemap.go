package seo

import (
	"time"

	"github.com/unknownriver/folio/i18n"
)

// SitemapRoutes are the pages listed in sitemap.xml.
var SitemapRoutes = []string{"", "/about", "/project", "/contact"}

// SitemapEntry is one <url> element.
type SitemapEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
	Alternates []Alternate
}

// SitemapEntries emits every sitemap route for every locale, each carrying
// alternates for all locales.
func SitemapEntries(base string, now time.Time) []SitemapEntry {
	entries := make([]SitemapEntry, 0, len(SitemapRoutes)*len(i18n.Supported))
	for _, route := range SitemapRoutes {
		freq, prio := "monthly", 0.8
		if route == "" {
			freq, prio = "weekly", 1.0
		}
		alts := Alternates(base, route)
		for _, l := range i18n.Supported {
			entries = append(entries, SitemapEntry{
				Loc:        BuildURL(base, l.Path(route)),
				LastMod:    now,
				ChangeFreq: freq,
				Priority:   prio,
				Alternates: alts,
			})
		}
	}
	return entries
}
