package views

import (
	"github.com/unknownriver/folio/cms"
	"github.com/unknownriver/folio/content"
	"github.com/unknownriver/folio/nav"
	"github.com/unknownriver/folio/seo"
)

// Page carries what the shared layout needs. T and L read the common
// translation namespace for the page's locale.
type Page struct {
	Meta    seo.Meta
	Shell   nav.Shell
	Profile content.Profile
	JSONLD  string
	Year    int
	T       func(key string) string
	L       func(key string) []string
}

// HomePage is the landing page.
type HomePage struct {
	Page
	Home       content.Home
	Skills     []content.SkillItem
	CareerHref string
}

// AboutPage is the career page.
type AboutPage struct {
	Page
	About content.About
}

// ProjectPage is the projects showcase.
type ProjectPage struct {
	Page
	Projects   []content.ProjectCard
	CareerHref string
}

// ContactPage is the contact page.
type ContactPage struct {
	Page
}

// PostsPage is the blog listing. Stale is set when the CMS could not be
// reached and a saved listing is shown.
type PostsPage struct {
	Page
	Posts []cms.Post
	Stale bool
}

// ErrorPage backs the 404 and 500 pages.
type ErrorPage struct {
	Page
	Code    int
	Heading string
	Body    string
}
