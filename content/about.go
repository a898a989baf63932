// Package content holds the typed records rendered by the site and the
// adapters that load them from translation catalogs.
package content

import (
	"fmt"

	"github.com/unknownriver/folio/i18n"
)

// Category groups bullet items under a heading inside a project block.
type Category struct {
	Name  string   `json:"name" validate:"required"`
	Items []string `json:"items" validate:"required,min=1,dive,required"`
}

// ProjectBlock is one project inside an experience entry. Works and
// Categories are independent and may both be present.
type ProjectBlock struct {
	Title       string     `json:"title" validate:"required"`
	Skills      string     `json:"skills"`
	Description string     `json:"description,omitempty"`
	Works       []string   `json:"works,omitempty" validate:"omitempty,dive,required"`
	Categories  []Category `json:"categories,omitempty" validate:"omitempty,dive"`
}

// ExperienceEntry is one employer on the career timeline.
type ExperienceEntry struct {
	Company  string         `json:"company" validate:"required"`
	Year     string         `json:"year"`
	Role     string         `json:"role,omitempty"`
	Projects []ProjectBlock `json:"projects" validate:"required,min=1,dive"`
}

// SpecItem is a named credential with an optional year.
type SpecItem struct {
	Name string `json:"name" validate:"required"`
	Year string `json:"year"`
}

// SpecData is the fixed education/certificate block, one per locale.
type SpecData struct {
	Education   SpecItem `json:"education"`
	Certificate SpecItem `json:"certificate"`
}

// About is everything the career page renders.
type About struct {
	Description string
	Highlights  []string
	Experience  []ExperienceEntry
	Spec        SpecData
}

// LoadAbout decodes the about namespace for locale. Malformed or missing
// structured content is an error.
func LoadAbout(store *i18n.Store, locale i18n.Locale) (About, error) {
	a := About{
		Description: store.T(locale, i18n.NSAbout, "description"),
		Highlights:  store.Strings(locale, i18n.NSAbout, "highlights"),
	}
	if err := store.Decode(locale, i18n.NSAbout, "experience", &a.Experience); err != nil {
		return About{}, fmt.Errorf("load about experience: %w", err)
	}
	if len(a.Experience) == 0 {
		return About{}, fmt.Errorf("load about experience: %w: %s has no entries", i18n.ErrInvalidContent, locale)
	}
	if err := store.Decode(locale, i18n.NSAbout, "spec", &a.Spec); err != nil {
		return About{}, fmt.Errorf("load about spec: %w", err)
	}
	return a, nil
}
