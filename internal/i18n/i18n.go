// Package i18n loads the YAML message catalogs and hands out printers
// backed by golang.org/x/text/message.
package i18n

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/agenda"
)

// DefaultLocale is the locale used when none is configured.
const DefaultLocale = "es"

// Supported lists the locales shipped in the embedded catalogs.
var Supported = []string{"es", "en"}

// ErrUnknownLocale indicates a printer was requested for a locale with no catalog.
var ErrUnknownLocale = errors.New("i18n: unknown locale")

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the messages of every loaded locale.
type Catalog struct {
	builder  *catalog.Builder
	messages map[string]map[string]string
}

// LoadEmbedded loads every supported locale from the embedded catalogs.
func LoadEmbedded() (*Catalog, error) {
	return Load(agenda.Locales, Supported...)
}

// Load reads <locale>.yaml from fsys for each locale.
func Load(fsys fs.FS, locales ...string) (*Catalog, error) {
	if len(locales) == 0 {
		return nil, errors.New("i18n: no locales requested")
	}
	c := &Catalog{
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(DefaultLocale))),
		messages: make(map[string]map[string]string, len(locales)),
	}
	for _, locale := range locales {
		if err := c.loadLocale(fsys, locale); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) loadLocale(fsys fs.FS, locale string) error {
	path := locale + ".yaml"
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("i18n: reading %s: %w", path, err)
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return fmt.Errorf("i18n: parsing %s: %w", path, err)
	}
	if strings.TrimSpace(file.Locale) != locale {
		return fmt.Errorf("i18n: %s declares locale %q, want %q", path, file.Locale, locale)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("i18n: %s has no messages", path)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("i18n: parsing locale tag %q: %w", locale, err)
	}

	msgs := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("i18n: %s: message key cannot be blank", path)
		}
		if err := c.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("i18n: %s: registering %q: %w", path, key, err)
		}
		msgs[key] = value
	}
	c.messages[locale] = msgs
	return nil
}

// Has reports whether the locale was loaded.
func (c *Catalog) Has(locale string) bool {
	_, ok := c.messages[locale]
	return ok
}

// Keys returns the sorted message keys of a locale.
func (c *Catalog) Keys(locale string) []string {
	msgs := c.messages[locale]
	keys := make([]string, 0, len(msgs))
	for k := range msgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Printer returns a printer for the locale.
func (c *Catalog) Printer(locale string) (*Printer, error) {
	if !c.Has(locale) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	tag := language.MustParse(locale)
	return &Printer{
		locale: locale,
		p:      message.NewPrinter(tag, message.Catalog(c.builder)),
	}, nil
}

// Printer formats catalog messages for a single locale.
type Printer struct {
	locale string
	p      *message.Printer
}

// T returns the message for key formatted with args.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Locale returns the locale this printer was created for.
func (p *Printer) Locale() string {
	return p.locale
}
