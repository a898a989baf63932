package folio

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/unknownriver/folio/content"
	"github.com/unknownriver/folio/i18n"
	"github.com/unknownriver/folio/nav"
	"github.com/unknownriver/folio/seo"
	"github.com/unknownriver/folio/views"
)

type localeHandler func(c echo.Context, loc i18n.Locale) error

// localized binds a page handler to loc. Unprefixed default-locale pages
// send visitors who prefer another locale to its prefixed path.
func (a *App) localized(loc i18n.Locale, h localeHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		if loc == i18n.Default && !a.Config.DisableLocaleDetection {
			if want := visitorLocale(c); want != loc {
				return c.Redirect(http.StatusFound, withQuery(nav.SwitchPath(c.Request().URL.Path, want), c))
			}
		}
		return h(c, loc)
	}
}

func (a *App) site() seo.Site {
	return seo.Site{URL: a.Config.URL, TwitterCreator: a.Config.TwitterCreator}
}

func (a *App) page(c echo.Context, loc i18n.Locale, p seo.Page) views.Page {
	return views.Page{
		Meta:    seo.Build(a.Content, a.site(), loc, p),
		Shell:   nav.BuildShell(a.Content, loc, c.Request().URL.Path, a.Profile.Email),
		Profile: a.Profile,
		JSONLD: seo.PersonJSONLD(a.Config.URL, a.Profile.Name, a.Profile.JobTitle,
			a.Profile.Locality, a.Profile.Country, a.Profile.KnowsAbout),
		Year: a.now().Year(),
		T: func(key string) string {
			return a.Content.T(loc, i18n.NSCommon, key)
		},
		L: func(key string) []string {
			return a.Content.Strings(loc, i18n.NSCommon, key)
		},
	}
}

func (a *App) handleHome(c echo.Context, loc i18n.Locale) error {
	return Render(c, a.Views.Home(views.HomePage{
		Page:       a.page(c, loc, seo.Home),
		Home:       content.LoadHome(a.Content, loc),
		Skills:     content.Skills,
		CareerHref: loc.Path(seo.About.Route),
	}))
}

func (a *App) handleAbout(c echo.Context, loc i18n.Locale) error {
	about, err := content.LoadAbout(a.Content, loc)
	if err != nil {
		return err
	}
	return Render(c, a.Views.About(views.AboutPage{
		Page:  a.page(c, loc, seo.About),
		About: about,
	}))
}

func (a *App) handleProject(c echo.Context, loc i18n.Locale) error {
	return Render(c, a.Views.Project(views.ProjectPage{
		Page:       a.page(c, loc, seo.Project),
		Projects:   content.Projects(loc),
		CareerHref: loc.Path(seo.About.Route),
	}))
}

func (a *App) handleContact(c echo.Context, loc i18n.Locale) error {
	return Render(c, a.Views.Contact(views.ContactPage{
		Page: a.page(c, loc, seo.Contact),
	}))
}

func (a *App) handlePosts(c echo.Context, loc i18n.Locale) error {
	list, err := a.Posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Posts(views.PostsPage{
		Page:  a.page(c, loc, seo.Posts),
		Posts: list.Posts,
		Stale: list.Stale,
	}))
}

// handleLocaleSwitch remembers the chosen locale and sends the visitor to
// the same page under it.
func (a *App) handleLocaleSwitch(c echo.Context) error {
	loc, ok := i18n.ParseLocale(c.Param("locale"))
	if !ok {
		return echo.ErrNotFound
	}
	if err := setPreferredLocale(c, loc); err != nil {
		return fmt.Errorf("save locale preference: %w", err)
	}
	next := nav.SafeNext(c.QueryParam("next"))
	return c.Redirect(http.StatusSeeOther, nav.SwitchPath(next, loc))
}

// handleDefaultLocaleRedirect folds /en/... onto the unprefixed path.
func handleDefaultLocaleRedirect(c echo.Context) error {
	_, rest := nav.SplitLocale(c.Request().URL.Path)
	return c.Redirect(http.StatusMovedPermanently, withQuery(nav.SafeNext(rest), c))
}

func withQuery(path string, c echo.Context) string {
	if q := c.Request().URL.RawQuery; q != "" {
		return path + "?" + q
	}
	return path
}

func (a *App) handleSitemap(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), a.Config.URL, a.now())
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n\n")
	fmt.Fprintf(&b, "Sitemap: %s\n", seo.BuildURL(a.Config.URL, "sitemap.xml"))
	return c.String(http.StatusOK, b.String())
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *App) errorPage(c echo.Context, code int) views.ErrorPage {
	loc, _ := nav.SplitLocale(c.Request().URL.Path)
	p := a.page(c, loc, seo.Home)
	heading, body := "errors.server", "errors.serverBody"
	if code == http.StatusNotFound {
		heading, body = "errors.notFound", "errors.notFoundBody"
	}
	ep := views.ErrorPage{
		Page:    p,
		Code:    code,
		Heading: p.T(heading),
		Body:    p.T(body),
	}
	ep.Meta.Title = ep.Heading + " | " + p.Meta.SiteName
	ep.Meta.Description = ep.Body
	ep.Meta.Robots = "noindex"
	ep.Meta.Canonical = ""
	ep.Meta.Alternates = nil
	return ep
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		if rerr := RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.errorPage(c, http.StatusNotFound))); rerr != nil {
			c.Logger().Errorf("render not found page: %v", rerr)
			a.Echo.DefaultHTTPErrorHandler(err, c)
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		if rerr := RenderStatus(c, code, a.Views.ServerError(a.errorPage(c, code))); rerr != nil {
			c.Logger().Errorf("render error page: %v", rerr)
			a.Echo.DefaultHTTPErrorHandler(err, c)
		}
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
