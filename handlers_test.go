package folio

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/unknownriver/folio/cms"
	"github.com/unknownriver/folio/i18n"
	"github.com/unknownriver/folio/seo"
)

const testSiteURL = "https://example.com"

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type stubSource struct {
	posts []cms.Post
	err   error
}

func (s stubSource) ListPosts(context.Context) ([]cms.Post, error) {
	return s.posts, s.err
}

func newTestApp(t *testing.T, src PostSource, configure ...func(*SiteConfig)) *App {
	t.Helper()
	cfg := SiteConfig{
		URL:           testSiteURL,
		SessionSecret: "test-secret",
		DatabasePath:  filepath.Join(t.TempDir(), "folio.db"),
	}
	for _, fn := range configure {
		fn(&cfg)
	}
	a := New(cfg, ViewFuncs{}, WithPostSource(src), WithClock(func() time.Time { return testNow }))
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func do(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string) *httptest.ResponseRecorder {
	return do(a, httptest.NewRequest(http.MethodGet, target, nil))
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestEveryPageHasTitleAndDescription(t *testing.T) {
	a := newTestApp(t, stubSource{posts: []cms.Post{}})

	for _, loc := range i18n.Supported {
		for _, p := range seo.Pages {
			path := loc.Path(p.Route)
			rec := get(a, path)
			if rec.Code != http.StatusOK {
				t.Errorf("GET %s = %d", path, rec.Code)
				continue
			}
			doc := parse(t, rec)
			want := seo.Build(a.Content, a.site(), loc, p)
			if got := doc.Find("title").Text(); got == "" || got != want.Title {
				t.Errorf("GET %s title = %q, want %q", path, got, want.Title)
			}
			if desc, _ := doc.Find(`meta[name="description"]`).Attr("content"); desc == "" {
				t.Errorf("GET %s has empty description", path)
			}
			if lang, _ := doc.Find("html").Attr("lang"); lang != loc.String() {
				t.Errorf("GET %s lang = %q", path, lang)
			}
		}
	}
}

func TestCanonicalAndAlternateLinks(t *testing.T) {
	a := newTestApp(t, stubSource{})

	tests := []struct {
		path      string
		canonical string
	}{
		{"/", testSiteURL + "/"},
		{"/about", testSiteURL + "/about"},
		{"/ko", testSiteURL + "/ko"},
		{"/ko/about", testSiteURL + "/ko/about"},
	}
	for _, tt := range tests {
		doc := parse(t, get(a, tt.path))
		if got, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); got != tt.canonical {
			t.Errorf("%s canonical = %q, want %q", tt.path, got, tt.canonical)
		}
		langs := map[string]bool{}
		doc.Find(`link[rel="alternate"]`).Each(func(_ int, s *goquery.Selection) {
			l, _ := s.Attr("hreflang")
			langs[l] = true
		})
		if !langs["en"] || !langs["ko"] {
			t.Errorf("%s alternates = %v", tt.path, langs)
		}
	}
}

func TestPostsRendersCMSListingInOrder(t *testing.T) {
	wp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":7,"slug":"seventh","title":{"rendered":"Seventh"},"excerpt":{"rendered":"<p>7</p>"}},
			{"id":2,"slug":"second","title":{"rendered":"Second"},"excerpt":{"rendered":"<p>2</p>"}},
			{"id":5,"slug":"fifth","title":{"rendered":"Fifth &amp; last"},"excerpt":{"rendered":"<p>5</p>"}}
		]`))
	}))
	defer wp.Close()

	a := newTestApp(t, cms.NewClient(wp.URL))
	rec := get(a, "/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /posts = %d", rec.Code)
	}
	items := parse(t, rec).Find("li.post-item")
	if items.Length() != 3 {
		t.Fatalf("got %d post items, want 3", items.Length())
	}
	want := []struct{ title, key, href string }{
		{"Seventh", "seventh-0", "/post/seventh"},
		{"Second", "second-1", "/post/second"},
		{"Fifth & last", "fifth-2", "/post/fifth"},
	}
	items.Each(func(i int, s *goquery.Selection) {
		if got := s.Find("h2").Text(); got != want[i].title {
			t.Errorf("item %d title = %q, want %q", i, got, want[i].title)
		}
		if got, _ := s.Attr("data-key"); got != want[i].key {
			t.Errorf("item %d key = %q, want %q", i, got, want[i].key)
		}
		if got, _ := s.Find("a").Attr("href"); got != want[i].href {
			t.Errorf("item %d href = %q, want %q", i, got, want[i].href)
		}
	})
}

func TestPostsEmptyListing(t *testing.T) {
	a := newTestApp(t, stubSource{posts: []cms.Post{}})

	doc := parse(t, get(a, "/ko/posts"))
	if doc.Find("li.post-item").Length() != 0 {
		t.Error("expected no post items")
	}
	if got := doc.Find("p.empty").Text(); got != a.Content.T(i18n.Ko, i18n.NSCommon, "posts.empty") {
		t.Errorf("empty message = %q", got)
	}
}

func TestPostsUpstreamFailureRendersServerError(t *testing.T) {
	a := newTestApp(t, stubSource{err: errors.New("connection refused")})

	rec := get(a, "/posts")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("GET /posts = %d, want 500", rec.Code)
	}
	doc := parse(t, rec)
	if got := doc.Find(".error-page .code").Text(); got != "500" {
		t.Errorf("error code = %q", got)
	}
	if robots, _ := doc.Find(`meta[name="robots"]`).Attr("content"); robots != "noindex" {
		t.Errorf("robots = %q", robots)
	}
}

func TestPostsServesSnapshotWhenUpstreamFails(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "folio.db")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	saved := []cms.Post{{ID: 7, Slug: "kept", Title: "Kept", Link: "/post/kept"}}
	if err := store.SaveSnapshot(context.Background(), saved, testNow.Add(-time.Hour)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	store.Close()

	a := newTestApp(t, stubSource{err: errors.New("connection refused")}, func(c *SiteConfig) { c.DatabasePath = dbPath })

	rec := get(a, "/ko/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ko/posts = %d, want 200", rec.Code)
	}
	doc := parse(t, rec)
	if k, _ := doc.Find("li.post-item").Attr("data-key"); k != "kept-0" {
		t.Errorf("post key = %q, want kept-0", k)
	}
	if got := doc.Find("p.stale").Text(); got != a.Content.T(i18n.Ko, i18n.NSCommon, "posts.stale") {
		t.Errorf("stale notice = %q", got)
	}
}

func TestPostsRateLimited(t *testing.T) {
	a := newTestApp(t, stubSource{posts: []cms.Post{}}, func(c *SiteConfig) { c.PostsRateLimit = 2 })

	for i := 0; i < 2; i++ {
		if rec := get(a, "/posts"); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, rec.Code)
		}
	}
	rec := get(a, "/posts")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	if rec := get(a, "/about"); rec.Code != http.StatusOK {
		t.Errorf("other pages should not be limited, got %d", rec.Code)
	}
}

func TestNotFoundIsLocalized(t *testing.T) {
	a := newTestApp(t, stubSource{})

	tests := []struct {
		path string
		lang string
	}{
		{"/missing", "en"},
		{"/ko/missing", "ko"},
		{"/fr/about", "en"},
	}
	for _, tt := range tests {
		rec := get(a, tt.path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", tt.path, rec.Code)
			continue
		}
		doc := parse(t, rec)
		if lang, _ := doc.Find("html").Attr("lang"); lang != tt.lang {
			t.Errorf("GET %s lang = %q, want %q", tt.path, lang, tt.lang)
		}
		if doc.Find(".error-page").Length() != 1 {
			t.Errorf("GET %s did not render the error page", tt.path)
		}
	}
}

func TestRedirects(t *testing.T) {
	a := newTestApp(t, stubSource{})

	tests := []struct {
		path     string
		code     int
		location string
	}{
		{"/en", http.StatusMovedPermanently, "/"},
		{"/en/about", http.StatusMovedPermanently, "/about"},
		{"/en/project?ref=x", http.StatusMovedPermanently, "/project?ref=x"},
		{"/about/", http.StatusMovedPermanently, "/about"},
		{"/ko/contact/", http.StatusMovedPermanently, "/ko/contact"},
		{"/en/%5Cevil.example", http.StatusMovedPermanently, "/"},
	}
	for _, tt := range tests {
		rec := get(a, tt.path)
		if rec.Code != tt.code {
			t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.code)
		}
		if got := rec.Header().Get("Location"); got != tt.location {
			t.Errorf("GET %s Location = %q, want %q", tt.path, got, tt.location)
		}
	}
}

func TestLocaleSwitch(t *testing.T) {
	a := newTestApp(t, stubSource{})

	tests := []struct {
		path     string
		location string
	}{
		{"/lang/ko?next=%2Fproject", "/ko/project"},
		{"/lang/en?next=%2Fko%2Fproject", "/project"},
		{"/lang/en?next=%2Fko", "/"},
		{"/lang/ko?next=%2F", "/ko"},
		{"/lang/ko", "/ko"},
		{"/lang/ko?next=https%3A%2F%2Fevil.example%2Fx", "/ko"},
		{"/lang/en?next=%2F%5Cevil.example", "/"},
		{"/lang/ko?next=%2F%5Cevil.example", "/ko"},
		{"/lang/en?next=%2F%2Fevil.example", "/"},
	}
	for _, tt := range tests {
		rec := get(a, tt.path)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s = %d", tt.path, rec.Code)
			continue
		}
		if got := rec.Header().Get("Location"); got != tt.location {
			t.Errorf("GET %s Location = %q, want %q", tt.path, got, tt.location)
		}
		if len(rec.Result().Cookies()) == 0 {
			t.Errorf("GET %s did not set a session cookie", tt.path)
		}
	}

	if rec := get(a, "/lang/fr"); rec.Code != http.StatusNotFound {
		t.Errorf("unsupported locale = %d, want 404", rec.Code)
	}
}

func TestDetectLocale(t *testing.T) {
	a := newTestApp(t, stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.5")
	rec := do(a, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/ko/about" {
		t.Fatalf("korean visitor: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/ko/about", nil)
	req.Header.Set("Accept-Language", "en-US")
	if rec := do(a, req); rec.Code != http.StatusOK {
		t.Errorf("prefixed pages are never redirected, got %d", rec.Code)
	}

	// An explicit choice outranks Accept-Language.
	req = httptest.NewRequest(http.MethodGet, "/lang/en?next=%2Fabout", nil)
	req.Header.Set("Accept-Language", "ko-KR")
	switched := do(a, req)
	req = httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Language", "ko-KR")
	for _, c := range switched.Result().Cookies() {
		req.AddCookie(c)
	}
	if rec := do(a, req); rec.Code != http.StatusOK {
		t.Errorf("visitor who chose en got %d", rec.Code)
	}
}

func TestDisableLocaleDetection(t *testing.T) {
	a := newTestApp(t, stubSource{}, func(c *SiteConfig) { c.DisableLocaleDetection = true })

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Language", "ko-KR")
	rec := do(a, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /about = %d, want 200", rec.Code)
	}
	if vary := rec.Header().Get("Vary"); strings.Contains(vary, "Accept-Language") {
		t.Errorf("Vary = %q, want no Accept-Language", vary)
	}
}

func TestHeaderShell(t *testing.T) {
	a := newTestApp(t, stubSource{})

	doc := parse(t, get(a, "/ko/project"))
	active := doc.Find(".nav-links a.active")
	if active.Length() != 1 || active.Text() != "PROJECT" {
		t.Errorf("active link = %q (%d)", active.Text(), active.Length())
	}
	if href, _ := active.Attr("href"); href != "/ko/project" {
		t.Errorf("active href = %q", href)
	}
	var enHref string
	doc.Find(".locale-switch a").Each(func(_ int, s *goquery.Selection) {
		if s.Text() == "EN" {
			enHref, _ = s.Attr("href")
		}
	})
	if enHref != "/lang/en?next=%2Fproject" {
		t.Errorf("EN switch href = %q", enHref)
	}
	if href, _ := doc.Find("a.brand").Attr("href"); href != "/ko" {
		t.Errorf("brand href = %q", href)
	}
}

func TestAboutRendersTimelineInOrder(t *testing.T) {
	a := newTestApp(t, stubSource{})

	doc := parse(t, get(a, "/about"))
	var keys []string
	doc.Find(".experience-entry").Each(func(_ int, s *goquery.Selection) {
		k, _ := s.Attr("data-key")
		keys = append(keys, k)
	})
	want := []string{"Greenery-0", "H-Energy-1", "Geeks Family-2", "FineInsight-3"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("timeline keys = %v, want %v", keys, want)
	}
	if doc.Find(".experience-entry").First().Find(".category").Length() == 0 {
		t.Error("first project should render categories")
	}
}

func TestProjectCardsMatchCatalog(t *testing.T) {
	a := newTestApp(t, stubSource{})

	for _, loc := range i18n.Supported {
		doc := parse(t, get(a, loc.Path("/project")))
		cards := doc.Find("article.project-card")
		if cards.Length() == 0 {
			t.Fatalf("%s: no project cards", loc)
		}
		if first := cards.First().Find("h2").Text(); first == "" {
			t.Errorf("%s: first card has no title", loc)
		}
	}
}

func TestJSONLD(t *testing.T) {
	a := newTestApp(t, stubSource{})

	doc := parse(t, get(a, "/"))
	ld := doc.Find(`script[type="application/ld+json"]`).Text()
	if !strings.Contains(ld, `"@type":"Person"`) || !strings.Contains(ld, `"UNKNOWN RIVER"`) {
		t.Errorf("json-ld = %s", ld)
	}
}

func TestSitemapHandler(t *testing.T) {
	a := newTestApp(t, stubSource{})

	rec := get(a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("Content-Type = %q", ct)
	}

	var set struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
			Links   []struct {
				Hreflang string `xml:"hreflang,attr"`
				Href     string `xml:"href,attr"`
			} `xml:"link"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(rec.Body.Bytes(), &set); err != nil {
		t.Fatalf("unmarshal sitemap: %v", err)
	}
	if len(set.URLs) != 8 {
		t.Fatalf("got %d urls, want 8", len(set.URLs))
	}
	for _, u := range set.URLs {
		if u.LastMod != "2026-05-04" {
			t.Errorf("%s lastmod = %q", u.Loc, u.LastMod)
		}
		langs := map[string]string{}
		for _, l := range u.Links {
			langs[l.Hreflang] = l.Href
		}
		if langs["en"] == "" || langs["ko"] == "" {
			t.Errorf("%s alternates = %v", u.Loc, langs)
		}
	}
}

func TestRobots(t *testing.T) {
	a := newTestApp(t, stubSource{})

	rec := get(a, "/robots.txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /robots.txt = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots.txt = %q", rec.Body.String())
	}
}

func TestOGImage(t *testing.T) {
	a := newTestApp(t, stubSource{})

	rec := get(a, "/og/ko/about.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET og image = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 630 {
		t.Errorf("bounds = %v", b)
	}

	for _, path := range []string{"/og/fr/about.png", "/og/en/nope.png", "/og/en/about.jpg"} {
		if rec := get(a, path); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}

func TestStaticAssetsAndHealth(t *testing.T) {
	a := newTestApp(t, stubSource{})

	rec := get(a, "/public/site.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /public/site.css = %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if rec := get(a, "/public/skills/react.svg"); rec.Code != http.StatusOK {
		t.Errorf("skill icon = %d", rec.Code)
	}
	if rec := get(a, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestSetupRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "x.db")}, ViewFuncs{})
	if err := a.Setup(); err == nil {
		t.Fatal("expected error without SessionSecret")
	}
}

func TestRequestIDHeader(t *testing.T) {
	a := newTestApp(t, stubSource{})

	rec := get(a, "/contact")
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id")
	}
}
