package cmd

import (
	"fmt"
	"os"
	"time"

	summaryadapter "github.com/bnema/social-accounts-cli/internal/adapters/render/summary"
	tomlrepo "github.com/bnema/social-accounts-cli/internal/adapters/repo/toml"
	filestore "github.com/bnema/social-accounts-cli/internal/adapters/secrets/file"
	"github.com/bnema/social-accounts-cli/internal/application"
	"github.com/bnema/social-accounts-cli/internal/config"
	"github.com/bnema/social-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type app struct {
	workspace       *application.Workspace
	summaryRenderer func(application.Summary, summaryadapter.RenderOptions) (string, error)
	logger          *logrus.Logger
	now             func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := config.LogLevel(cfg)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	secretStore := filestore.NewStore(cfg.GetString(config.KeySecretsDir))
	store, err := tomlrepo.NewSnapshotStore(cfg, secretStore)
	if err != nil {
		return nil, fmt.Errorf("wire snapshot store: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"function": "wireApp",
		"state":    store.Path(),
		"secrets":  cfg.GetString(config.KeySecretsDir),
	}).Debug("Wired state store")

	clock := ports.SystemClock{}
	return &app{
		workspace:       application.NewWorkspace(store, clock, logger),
		summaryRenderer: summaryadapter.Render,
		logger:          logger,
		now:             clock.Now,
	}, nil
}
