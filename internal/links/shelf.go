// Package links keeps the ordered quick-link shelf.
package links

import (
	"net/url"
	"regexp"
	"slices"

	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/storage"
)

var schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// Defaults is the shelf seeded on first run.
var Defaults = []models.QuickLink{
	{Title: "GitHub", URL: "https://github.com"},
	{Title: "Stack Overflow", URL: "https://stackoverflow.com"},
	{Title: "Gemini", URL: "https://gemini.google.com/app"},
	{Title: "Quera", URL: "https://quera.ir"},
	{Title: "Byte", URL: "https://byte-mag.ir"},
}

// Shelf is an ordered list of links identified by position. It is not safe
// for concurrent use.
type Shelf struct {
	gw    *storage.Gateway
	links []models.QuickLink
}

// NewShelf loads the shelf from gw.
func NewShelf(gw *storage.Gateway) *Shelf {
	return &Shelf{
		gw:    gw,
		links: storage.Get(gw, storage.KeyQuickLinks, []models.QuickLink{}),
	}
}

// SeedDefaultsIfEmpty installs defaults when the shelf has no links.
func (s *Shelf) SeedDefaultsIfEmpty(defaults []models.QuickLink) {
	if len(s.links) > 0 {
		return
	}
	s.links = slices.Clone(defaults)
	if s.links == nil {
		s.links = []models.QuickLink{}
	}
	s.persist()
}

// Add appends a link, defaulting a scheme-less url to https.
func (s *Shelf) Add(title, rawURL string) (models.QuickLink, error) {
	l := models.NewQuickLink(title, rawURL)
	if err := l.Validate(); err != nil {
		return models.QuickLink{}, err
	}
	l.URL = NormalizeURL(l.URL)
	s.links = append(s.links, l)
	s.persist()
	return l, nil
}

// RemoveAt deletes the link at i. Out of range indexes are ignored.
// Later links shift down by one.
func (s *Shelf) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.links) {
		return false
	}
	s.links = slices.Delete(s.links, i, i+1)
	s.persist()
	return true
}

// List returns a copy of the shelf.
func (s *Shelf) List() []models.QuickLink {
	return append([]models.QuickLink{}, s.links...)
}

// Reload replaces the shelf with the stored one. The current state is kept
// when the stored value is missing or corrupt.
func (s *Shelf) Reload() bool {
	links, ok := storage.Load[[]models.QuickLink](s.gw, storage.KeyQuickLinks)
	if !ok {
		return false
	}
	s.links = links
	return true
}

func (s *Shelf) persist() {
	s.gw.Set(storage.KeyQuickLinks, s.links)
}

// NormalizeURL prefixes https:// when u carries no scheme.
func NormalizeURL(u string) string {
	if schemeRe.MatchString(u) {
		return u
	}
	return "https://" + u
}

// FaviconURL returns the favicon service address for the host of u.
func FaviconURL(u string) string {
	host := u
	if parsed, err := url.Parse(u); err == nil && parsed.Hostname() != "" {
		host = parsed.Hostname()
	}
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(host) + "&sz=64"
}
