// Package folio serves the bilingual UNKNOWN RIVER portfolio site with Echo.
//
// Pages are rendered from embedded translation catalogs and static project
// data; the blog listing is read from a WordPress REST API and cached with a
// SQLite snapshot fallback. Page templates are provided through ViewFuncs so
// callers can replace any of them.
package folio

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/unknownriver/folio/cms"
	"github.com/unknownriver/folio/content"
	"github.com/unknownriver/folio/i18n"
	"github.com/unknownriver/folio/views"
)

// ViewFuncs holds the components the handlers render. Nil entries fall back
// to the embedded templates in package views.
type ViewFuncs struct {
	Home        func(views.HomePage) templ.Component
	About       func(views.AboutPage) templ.Component
	Project     func(views.ProjectPage) templ.Component
	Contact     func(views.ContactPage) templ.Component
	Posts       func(views.PostsPage) templ.Component
	NotFound    func(views.ErrorPage) templ.Component
	ServerError func(views.ErrorPage) templ.Component
}

// DefaultViews returns the embedded page templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		About:       views.About,
		Project:     views.Project,
		Contact:     views.Contact,
		Posts:       views.Posts,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v *ViewFuncs) fillDefaults() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.About == nil {
		v.About = d.About
	}
	if v.Project == nil {
		v.Project = d.Project
	}
	if v.Contact == nil {
		v.Contact = d.Contact
	}
	if v.Posts == nil {
		v.Posts = d.Posts
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App is the central application. It wires together the content store, the
// post cache and snapshot store, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *i18n.Store
	Store   *Store
	Posts   *PostCache
	Profile content.Profile
	Views   ViewFuncs

	source       PostSource
	limiter      *RateLimiter
	ogImages     *OGImageCache
	now          func() time.Time
	customRoutes []func(*App)
	ready        bool
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	v.fillDefaults()

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		Profile: content.DefaultProfile,
		Views:   v,
		now:     time.Now,
	}
	if cfg.ContactEmail != "" {
		a.Profile.Email = cfg.ContactEmail
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup loads content, opens the snapshot store, and registers middleware
// and routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	if a.Content == nil {
		store, err := i18n.DefaultStore()
		if err != nil {
			return fmt.Errorf("folio: load translations: %w", err)
		}
		a.Content = store
	}
	if err := content.Validate(a.Content); err != nil {
		return fmt.Errorf("folio: invalid content: %w", err)
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	if a.source == nil {
		a.source = cms.NewClient(a.Config.WPAPIURL)
	}
	a.Posts = NewPostCache(a.source, a.Store, a.Config.PostsRevalidate, a.Echo.Logger)
	a.limiter = NewRateLimiter(a.Config.PostsRateLimit, time.Minute)
	a.ogImages = NewOGImageCache()

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.StaticFS("/public", echo.MustSubFS(PublicAssets, "public"))
	e.FileFS("/favicon.svg", "public/favicon.svg", PublicAssets)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", handleHealth)
	e.GET("/og/:locale/:file", a.handleOGImage)

	e.GET("/lang/:locale", a.handleLocaleSwitch)
	e.GET("/"+i18n.Default.String(), handleDefaultLocaleRedirect)
	e.GET("/"+i18n.Default.String()+"/*", handleDefaultLocaleRedirect)

	for _, loc := range i18n.Supported {
		e.GET(loc.Path(""), a.localized(loc, a.handleHome))
		e.GET(loc.Path("/about"), a.localized(loc, a.handleAbout))
		e.GET(loc.Path("/project"), a.localized(loc, a.handleProject))
		e.GET(loc.Path("/contact"), a.localized(loc, a.handleContact))
		e.GET(loc.Path("/posts"), a.localized(loc, a.handlePosts), a.limitRequests)
	}
}

// Close releases the snapshot store and background workers.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
