package folio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/unknownriver/folio/i18n"
	"github.com/unknownriver/folio/seo"
)

const (
	ogWidth  = 1200
	ogHeight = 630
	// Cards are drawn at 1/ogScale size with the bitmap font and scaled up.
	ogScale = 4
)

var (
	ogBackground = color.RGBA{0x0b, 0x0b, 0x0b, 0xff}
	ogAccent     = color.RGBA{0xe9, 0x47, 0x10, 0xff}
	ogText       = color.RGBA{0xf5, 0xf5, 0xf0, 0xff}
	ogMuted      = color.RGBA{0x8a, 0x8a, 0x85, 0xff}
)

// OGCard is the text drawn on an Open Graph image. Only ASCII renders.
type OGCard struct {
	Brand    string
	Title    string
	Subtitle string
	Footer   string
}

// RenderOGImage draws card as a 1200x630 PNG.
func RenderOGImage(card OGCard) ([]byte, error) {
	small := image.NewRGBA(image.Rect(0, 0, ogWidth/ogScale, (ogHeight+ogScale-1)/ogScale))
	draw.Draw(small, small.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)
	draw.Draw(small, image.Rect(0, 0, 4, small.Bounds().Dy()), image.NewUniform(ogAccent), image.Point{}, draw.Src)

	drawText(small, card.Brand, 16, 24, ogAccent)
	drawText(small, card.Title, 16, 72, ogText)
	drawText(small, card.Subtitle, 16, 96, ogMuted)
	drawText(small, card.Footer, 16, 144, ogMuted)

	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(dst draw.Image, s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(asciiOnly(s))
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, s)
}

// OGImageCache memoizes rendered cards by key.
type OGImageCache struct {
	mu     sync.RWMutex
	images map[string][]byte
}

// NewOGImageCache creates an empty cache.
func NewOGImageCache() *OGImageCache {
	return &OGImageCache{images: make(map[string][]byte)}
}

// Get returns the cached image for key, rendering card on a miss.
func (c *OGImageCache) Get(key string, card OGCard) ([]byte, error) {
	c.mu.RLock()
	img, ok := c.images[key]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := RenderOGImage(card)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()
	return img, nil
}

func (a *App) ogCard(loc i18n.Locale, p seo.Page) OGCard {
	title := strings.ToUpper(p.Key)
	if p == seo.Home {
		title = "PORTFOLIO"
	}
	return OGCard{
		Brand:    a.Profile.Name,
		Title:    title + " / " + strings.ToUpper(loc.String()),
		Subtitle: a.Profile.JobTitle,
		Footer:   strings.TrimPrefix(strings.TrimPrefix(a.Config.URL, "https://"), "http://"),
	}
}

func (a *App) handleOGImage(c echo.Context) error {
	loc, ok := i18n.ParseLocale(c.Param("locale"))
	if !ok {
		return echo.ErrNotFound
	}
	file := c.Param("file")
	if !strings.HasSuffix(file, ".png") {
		return echo.ErrNotFound
	}
	p, ok := seo.PageByKey(strings.TrimSuffix(file, ".png"))
	if !ok {
		return echo.ErrNotFound
	}
	img, err := a.ogImages.Get(loc.String()+"/"+p.Key, a.ogCard(loc, p))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", img)
}
