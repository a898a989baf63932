// Package seo derives per-page metadata and sitemap entries from the
// translation store.
package seo

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/unknownriver/folio/i18n"
)

// Page describes how a route's metadata is derived.
type Page struct {
	Key         string // stable identifier, also used for OG image names
	Route       string // "" for home
	TitleKey    string // meta.<TitleKey>
	DescKey     string // meta.<DescKey>
	KeywordsKey string // optional meta.<KeywordsKey>, comma separated
	OGType      string
	TwitterCard string
}

var (
	Home = Page{Key: "home", Route: "", TitleKey: "title", DescKey: "description", KeywordsKey: "keywords",
		OGType: "website", TwitterCard: "summary_large_image"}
	About = Page{Key: "about", Route: "/about", TitleKey: "aboutTitle", DescKey: "aboutDesc",
		OGType: "profile", TwitterCard: "summary"}
	Project = Page{Key: "project", Route: "/project", TitleKey: "projectTitle", DescKey: "projectDesc",
		OGType: "website", TwitterCard: "summary"}
	Contact = Page{Key: "contact", Route: "/contact", TitleKey: "contactTitle", DescKey: "contactDesc",
		OGType: "website", TwitterCard: "summary"}
	Posts = Page{Key: "posts", Route: "/posts", TitleKey: "postsTitle", DescKey: "postsDesc",
		OGType: "website", TwitterCard: "summary"}
)

// Pages lists every page with metadata.
var Pages = []Page{Home, About, Project, Contact, Posts}

// PageByKey finds a page definition.
func PageByKey(key string) (Page, bool) {
	for _, p := range Pages {
		if p.Key == key {
			return p, true
		}
	}
	return Page{}, false
}

// Alternate is an hreflang link.
type Alternate struct {
	Lang string
	Href string
}

// Meta is everything the <head> template needs.
type Meta struct {
	Title          string
	Description    string
	Keywords       []string
	SiteName       string
	Robots         string
	Lang           string
	OGLocale       string
	OGAltLocales   []string
	OGType         string
	OGImage        string
	TwitterCard    string
	TwitterCreator string
	Canonical      string
	Alternates     []Alternate
}

// Site carries the values metadata needs from configuration.
type Site struct {
	URL            string
	TwitterCreator string
}

// Build derives metadata for page in locale. Canonical URLs omit the locale
// prefix for the default locale and include it otherwise.
func Build(store *i18n.Store, site Site, locale i18n.Locale, page Page) Meta {
	m := Meta{
		Title:          store.T(locale, i18n.NSMeta, page.TitleKey),
		Description:    store.T(locale, i18n.NSMeta, page.DescKey),
		SiteName:       store.T(locale, i18n.NSMeta, "siteName"),
		Robots:         "index, follow, max-image-preview:large",
		Lang:           locale.String(),
		OGLocale:       locale.OpenGraph(),
		OGType:         page.OGType,
		OGImage:        BuildURL(site.URL, "og", locale.String(), page.Key+".png"),
		TwitterCard:    page.TwitterCard,
		TwitterCreator: site.TwitterCreator,
		Canonical:      BuildURL(site.URL, locale.Path(page.Route)),
		Alternates:     Alternates(site.URL, page.Route),
	}
	if page.KeywordsKey != "" {
		for _, k := range strings.Split(store.T(locale, i18n.NSMeta, page.KeywordsKey), ",") {
			if k = strings.TrimSpace(k); k != "" {
				m.Keywords = append(m.Keywords, k)
			}
		}
	}
	for _, other := range locale.Other() {
		m.OGAltLocales = append(m.OGAltLocales, other.OpenGraph())
	}
	return m
}

// Alternates returns one absolute URL per supported locale for route.
func Alternates(base, route string) []Alternate {
	out := make([]Alternate, 0, len(i18n.Supported))
	for _, l := range i18n.Supported {
		out = append(out, Alternate{Lang: l.String(), Href: BuildURL(base, l.Path(route))})
	}
	return out
}

// BuildURL joins path segments onto base. Unlike a directory URL, no
// trailing slash is added; the bare site root keeps its "/".
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "" || u.Path == "." {
		u.Path = "/"
	}
	return u.String()
}

// PersonJSONLD returns a Schema.org Person block for the site owner.
func PersonJSONLD(siteURL, name, jobTitle, locality, country string, knowsAbout []string) string {
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "Person",
		"name":       name,
		"jobTitle":   jobTitle,
		"url":        siteURL,
		"sameAs":     []string{},
		"knowsAbout": knowsAbout,
		"address": map[string]string{
			"@type":           "PostalAddress",
			"addressLocality": locality,
			"addressCountry":  country,
		},
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
