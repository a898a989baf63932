package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Namespaces shipped for every locale.
const (
	NSMeta   = "meta"
	NSAbout  = "about"
	NSCommon = "common"
)

// ErrInvalidContent is returned by Decode when a key is missing or its value
// does not match the requested shape.
var ErrInvalidContent = errors.New("invalid translation content")

//go:embed locales/*/*.json
var embeddedLocales embed.FS

var validate = validator.New()

// Store holds translation catalogs keyed by locale and namespace.
// It is read-only after load.
type Store struct {
	catalogs map[Locale]map[string]map[string]json.RawMessage
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// DefaultStore returns the process-wide store loaded from the embedded catalogs.
func DefaultStore() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = LoadStore(embeddedLocales)
	})
	return defaultStore, defaultErr
}

// LoadStore reads locales/{locale}/{namespace}.json from fsys. Every
// supported locale must provide the same set of namespaces.
func LoadStore(fsys fs.FS) (*Store, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.json")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no translation catalogs found")
	}
	sort.Strings(paths)

	s := &Store{catalogs: make(map[Locale]map[string]map[string]json.RawMessage)}
	for _, p := range paths {
		loc, ok := ParseLocale(path.Base(path.Dir(p)))
		if !ok {
			return nil, fmt.Errorf("catalog %s: unsupported locale", p)
		}
		ns := strings.TrimSuffix(path.Base(p), ".json")
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if s.catalogs[loc] == nil {
			s.catalogs[loc] = make(map[string]map[string]json.RawMessage)
		}
		s.catalogs[loc][ns] = entries
	}

	want := s.Namespaces()
	for _, loc := range Supported {
		for _, ns := range want {
			if _, ok := s.catalogs[loc][ns]; !ok {
				return nil, fmt.Errorf("locale %s is missing namespace %q", loc, ns)
			}
		}
	}
	return s, nil
}

// Locales returns the locales present in the store.
func (s *Store) Locales() []Locale {
	var out []Locale
	for _, l := range Supported {
		if _, ok := s.catalogs[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Namespaces returns the sorted union of namespaces across locales.
func (s *Store) Namespaces() []string {
	set := make(map[string]struct{})
	for _, nss := range s.catalogs {
		for ns := range nss {
			set[ns] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for ns := range set {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Raw returns the JSON sub-tree at key. Dotted keys walk nested objects.
// A key missing in locale falls back to Default.
func (s *Store) Raw(locale Locale, namespace, key string) (json.RawMessage, bool) {
	if v, ok := s.lookup(locale, namespace, key); ok {
		return v, true
	}
	if locale != Default {
		return s.lookup(Default, namespace, key)
	}
	return nil, false
}

// T returns the scalar string at key. Missing keys and non-string values
// render as "".
func (s *Store) T(locale Locale, namespace, key string) string {
	raw, ok := s.Raw(locale, namespace, key)
	if !ok {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return ""
	}
	return str
}

// Strings returns the string list at key, or nil.
func (s *Store) Strings(locale Locale, namespace, key string) []string {
	raw, ok := s.Raw(locale, namespace, key)
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// Decode parses the sub-tree at key into dst and validates it using
// `validate` struct tags. Unknown fields are rejected.
func (s *Store) Decode(locale Locale, namespace, key string, dst any) error {
	raw, ok := s.Raw(locale, namespace, key)
	if !ok {
		return fmt.Errorf("%w: %s/%s: key %q not found", ErrInvalidContent, locale, namespace, key)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s/%s.%s: %v", ErrInvalidContent, locale, namespace, key, err)
	}
	if err := validateValue(dst); err != nil {
		return fmt.Errorf("%w: %s/%s.%s: %v", ErrInvalidContent, locale, namespace, key, err)
	}
	return nil
}

// validateValue validates a struct, or each struct element of a slice.
// Other kinds pass unchecked.
func validateValue(v any) error {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Struct:
		return validate.Struct(rv.Interface())
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			elem := reflect.Indirect(rv.Index(i))
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := validate.Struct(elem.Interface()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	}
	return nil
}

func (s *Store) lookup(locale Locale, namespace, key string) (json.RawMessage, bool) {
	entries, ok := s.catalogs[locale][namespace]
	if !ok {
		return nil, false
	}
	parts := strings.Split(key, ".")
	cur, ok := entries[parts[0]]
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil, false
		}
		if cur, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}
