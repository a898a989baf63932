package views

import (
	"fmt"
	"html/template"
	"strings"
)

var funcs = template.FuncMap{
	"key":    ItemKey,
	"jsonld": jsonLD,
	"join":   strings.Join,
	"upper":  strings.ToUpper,
	"number": func(i int) string { return fmt.Sprintf("%02d", i+1) },
	"mailto": func(email string) template.URL { return template.URL("mailto:" + email) },
}

// ItemKey is the stable identity of a list entry: its name and position.
// Lists render in supplied order, so the position disambiguates repeats.
func ItemKey(name string, index int) string {
	return fmt.Sprintf("%s-%d", name, index)
}

// jsonLD marks a marshaled JSON-LD document as safe script content.
// Callers pass output of json.Marshal, which escapes <, > and &.
func jsonLD(doc string) template.JS {
	return template.JS(doc)
}
