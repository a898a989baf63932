package content

import (
	"errors"
	"fmt"

	"github.com/unknownriver/folio/i18n"
)

// SkillItem is one tile in the skills grid.
type SkillItem struct {
	Label string
	Icon  string
}

// Skills is locale independent.
var Skills = []SkillItem{
	{Label: "React", Icon: "/public/skills/react.svg"},
	{Label: "ReactNative", Icon: "/public/skills/react.svg"},
	{Label: "Next.js", Icon: "/public/skills/next.svg"},
	{Label: "Javascript", Icon: "/public/skills/javascript.svg"},
	{Label: "Typescript", Icon: "/public/skills/typescript.svg"},
	{Label: "Node.js", Icon: "/public/skills/node.svg"},
}

// SocialLink is a footer/contact social profile.
type SocialLink struct {
	Label string
	URL   string
	Icon  string
}

// Stat is a headline number on the landing page.
type Stat struct {
	Value int
	Key   string // common.home.stats.<Key>
}

// Preview is a row in the landing page experience preview.
type Preview struct {
	Company string
	Year    string
	Role    string
}

// Profile carries site-wide personal details.
type Profile struct {
	Name       string
	Short      string
	JobTitle   string
	Email      string
	Since      int
	Locality   string
	Country    string
	Socials    []SocialLink
	Stats      []Stat
	Previews   []Preview
	Marquee    []string
	KnowsAbout []string
}

// DefaultProfile is the profile the site ships with.
var DefaultProfile = Profile{
	Name:     "UNKNOWN RIVER",
	Short:    "UKWRV",
	JobTitle: "Frontend Developer & UI/UX Designer",
	Email:    "khe0124@gmail.com",
	Since:    2016,
	Locality: "Seoul",
	Country:  "KR",
	Socials: []SocialLink{
		{Label: "LinkedIn", Icon: "/public/social/linkedin.svg"},
		{Label: "Instagram", Icon: "/public/social/instagram.svg"},
		{Label: "GitHub", Icon: "/public/social/github.svg"},
	},
	Stats: []Stat{
		{Value: 5, Key: "years"},
		{Value: 15, Key: "projects"},
		{Value: 3, Key: "companies"},
	},
	Previews: []Preview{
		{Company: "Greenery", Year: "2022 — Present", Role: "Frontend Developer"},
		{Company: "H-Energy", Year: "2020 — 2022", Role: "Frontend Developer"},
		{Company: "Geeks Family", Year: "2019 — 2020", Role: "Frontend Developer"},
	},
	Marquee: []string{
		"REACT", "NEXT.JS", "TYPESCRIPT", "REACT NATIVE", "NODE.JS", "VUE", "REDUX",
		"FRAMER MOTION", "TAILWINDCSS", "CHAKRA UI", "MUI", "STORYBOOK",
	},
	KnowsAbout: []string{
		"React", "Next.js", "TypeScript", "JavaScript", "React Native", "Vue.js",
		"Node.js", "UI/UX Design", "Web3", "Carbon Credit Platform", "LCA System",
	},
}

// Home is the landing page copy.
type Home struct {
	Description string
	Roles       []string
}

// LoadHome reads the landing page copy for locale.
func LoadHome(store *i18n.Store, locale i18n.Locale) Home {
	return Home{
		Description: store.T(locale, i18n.NSAbout, "description"),
		Roles:       store.Strings(locale, i18n.NSCommon, "hero.roles"),
	}
}

// Validate decodes every structured translation for every locale and checks
// the project catalogs. It reports all problems at once.
func Validate(store *i18n.Store) error {
	var errs []error
	for _, loc := range i18n.Supported {
		if _, err := LoadAbout(store, loc); err != nil {
			errs = append(errs, err)
		}
		for _, key := range []string{"title", "description", "siteName"} {
			if store.T(loc, i18n.NSMeta, key) == "" {
				errs = append(errs, fmt.Errorf("%w: %s/meta.%s is empty", i18n.ErrInvalidContent, loc, key))
			}
		}
	}
	if err := CheckCatalogs(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
