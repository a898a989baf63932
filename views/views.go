// Package views renders the site's pages. Each page is an html/template
// file sharing one layout, exposed as a templ.Component.
package views

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = map[string]*template.Template{
	"home":    parsePage("home"),
	"about":   parsePage("about"),
	"project": parsePage("project"),
	"contact": parsePage("contact"),
	"posts":   parsePage("posts"),
	"error":   parsePage("error"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templatesFS,
		"templates/layout.html", "templates/"+name+".html"))
}

func render(name string, data any) templ.Component {
	return templ.FromGoHTML(pages[name].Lookup("layout"), data)
}

func Home(p HomePage) templ.Component       { return render("home", p) }
func About(p AboutPage) templ.Component     { return render("about", p) }
func Project(p ProjectPage) templ.Component { return render("project", p) }
func Contact(p ContactPage) templ.Component { return render("contact", p) }
func Posts(p PostsPage) templ.Component     { return render("posts", p) }

// NotFound and ServerError share the error template.
func NotFound(p ErrorPage) templ.Component    { return render("error", p) }
func ServerError(p ErrorPage) templ.Component { return render("error", p) }
