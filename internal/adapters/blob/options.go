package blob

import "github.com/okian/asistencia/pkg/logger"

// Option configures a MinioPublisher.
type Option func(*MinioPublisher)

// WithLogger sets the publisher logger.
func WithLogger(l logger.Logger) Option {
	return func(p *MinioPublisher) {
		if l != nil {
			p.logger = l
		}
	}
}
