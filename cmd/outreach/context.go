package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"outreach/internal/artifacts"
	"outreach/internal/config"
	"outreach/internal/logging"
	"outreach/internal/session"
	"outreach/internal/workflow"
)

const defaultSessionID = "default"

type commandContext struct {
	configFlag  *string
	sessionFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, sessionFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		sessionFlag: sessionFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) sessionID() string {
	if c.sessionFlag != nil {
		if id := strings.TrimSpace(*c.sessionFlag); id != "" {
			return id
		}
	}
	return defaultSessionID
}

// withService opens the session store and upload workspace, runs fn against a
// wired engine facade, and tears everything down afterwards.
func (c *commandContext) withService(fn func(ctx context.Context, svc *workflow.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	store, err := session.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	files, err := artifacts.Open(cfg)
	if err != nil {
		return err
	}
	defer files.Close()

	svc := workflow.NewService(cfg, logger, store, files)
	return fn(context.Background(), svc)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
