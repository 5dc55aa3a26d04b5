package startpage

import (
	"log/slog"
	"time"

	"github.com/starford/startpage/internal/models"
)

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the receiver of change notifications.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.pub = p
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithUntitledTitle sets the title used for notes saved without one.
func WithUntitledTitle(title string) Option {
	return func(s *Service) {
		s.untitled = title
	}
}

// WithDefaultLinks sets the links seeded into an empty shelf.
func WithDefaultLinks(links []models.QuickLink) Option {
	return func(s *Service) {
		s.defaults = links
	}
}

// WithLocation sets the time zone that decides which day is today.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}
