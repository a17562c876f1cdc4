package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/config"
	"github.com/papapumpkin/greenhouse/internal/logging"
	"github.com/papapumpkin/greenhouse/internal/telemetry"
)

// catalogSource is the catalog a command reads from. Fixture is nil for the
// remote API.
type catalogSource struct {
	catalog.Source
	Fixture *catalog.Fixture
	Label   string
}

// openSource builds the catalog source selected by cfg.
func openSource(cfg config.Config, log logrus.FieldLogger) (catalogSource, error) {
	if cfg.Catalog.Fixture != "" {
		f, err := catalog.LoadFixture(cfg.Catalog.Fixture)
		if err != nil {
			return catalogSource{}, fmt.Errorf("failed to load fixture: %w", err)
		}
		log.WithField("path", cfg.Catalog.Fixture).Info("using fixture catalog")
		return catalogSource{Source: f, Fixture: f, Label: filepath.Base(cfg.Catalog.Fixture)}, nil
	}
	c := catalog.NewClient(cfg.API.BaseURL, cfg.API.Timeout, catalog.WithLogger(log))
	log.WithField("base_url", c.BaseURL()).Info("using remote catalog")
	return catalogSource{Source: c, Label: "remote"}, nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// session holds the per-run logger and telemetry emitter.
type session struct {
	Log       *logrus.Logger
	Telemetry *telemetry.Emitter
	logCloser io.Closer
}

func openSession(cfg config.Config) (*session, error) {
	log, closer, err := logging.New(cfg.Log, cfg.Verbose)
	if err != nil {
		return nil, err
	}
	s := &session{Log: log, logCloser: closer}
	if cfg.Telemetry.File != "" {
		em, err := telemetry.NewEmitter(cfg.Telemetry.File)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		s.Telemetry = em
	}
	return s, nil
}

// Close flushes telemetry and the log file.
func (s *session) Close() error {
	var first error
	if err := s.Telemetry.Close(); err != nil {
		first = err
	}
	if err := s.logCloser.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
