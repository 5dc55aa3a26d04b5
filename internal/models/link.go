package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/startpage/internal/apperr"
)

// QuickLink is a shortcut shown on the link shelf.
type QuickLink struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// NewQuickLink trims both fields.
func NewQuickLink(title, url string) QuickLink {
	return QuickLink{
		Title: strings.TrimSpace(title),
		URL:   strings.TrimSpace(url),
	}
}

// Validate requires both title and url.
func (l QuickLink) Validate() error {
	err := validation.ValidateStruct(&l,
		validation.Field(&l.Title, validation.Required),
		validation.Field(&l.URL, validation.Required),
	)
	return apperr.Validation(err)
}
