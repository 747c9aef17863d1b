package browser

import "github.com/atheor/gowebtest/internal/logging"

// The built-in backends register themselves so NewSession works without any
// setup. Additional backends can be added with RegisterBackend.
func init() {
	RegisterBackend(BackendChromedp, func(cfg Config, logger logging.Logger) (Session, error) {
		return NewChromedpSession(cfg, logger)
	})
	RegisterBackend(BackendStatic, func(cfg Config, logger logging.Logger) (Session, error) {
		return NewStaticSession(cfg, logger)
	})
}
