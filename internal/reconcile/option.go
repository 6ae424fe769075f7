package reconcile

import (
	"log"

	"mini-rss/internal/common"
)

type option struct {
	logger common.Logger
}

type Option func(*option)

func defaultOption() *option {
	return &option{
		logger: log.Default(),
	}
}

// WithLogger inyecta el colaborador de observabilidad.
func WithLogger(l common.Logger) Option {
	return func(o *option) {
		if l != nil {
			o.logger = l
		}
	}
}
