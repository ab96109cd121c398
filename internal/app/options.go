package service

import (
	"time"

	"github.com/okian/dkcron/internal/domain/schedule"
	"github.com/okian/dkcron/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where contest records come from.
func WithSource(src Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithSynthesizer sets the cron job synthesizer.
func WithSynthesizer(synth *schedule.Synthesizer) Option {
	return func(s *Service) {
		if synth != nil {
			s.synth = synth
		}
	}
}

// WithLocation sets the location start dates are decoded in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
