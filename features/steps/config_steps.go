//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"video-to-audio/cmd"
	"video-to-audio/infrastructure/config"
)

type configContext struct {
	tempDir    string
	configPath string
	cfg        *config.Config
	output     *bytes.Buffer
	err        error
}

var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	c := SharedConfigContext

	ctx.Before(func(gctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return gctx, err
		}
		*c = configContext{tempDir: tempDir, output: &bytes.Buffer{}}
		return gctx, nil
	})

	ctx.After(func(gctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if c.tempDir != "" {
			os.RemoveAll(c.tempDir)
		}
		return gctx, nil
	})

	ctx.Step(`^a configuration file "([^"]*)" containing:$`, c.aConfigurationFileContaining)
	ctx.Step(`^no configuration file "([^"]*)" exists$`, c.noConfigurationFileExists)
	ctx.Step(`^I load the configuration$`, c.iLoadTheConfiguration)
	ctx.Step(`^I attempt to load the configuration$`, c.iAttemptToLoadTheConfiguration)
	ctx.Step(`^I set config "([^"]*)" to "([^"]*)"$`, c.iSetConfigTo)
	ctx.Step(`^I attempt to set config "([^"]*)" to "([^"]*)"$`, c.iAttemptToSetConfigTo)
	ctx.Step(`^I get config "([^"]*)"$`, c.iGetConfig)
	ctx.Step(`^I list the config$`, c.iListTheConfig)
	ctx.Step(`^the config value "([^"]*)" should be "([^"]*)"$`, c.theConfigValueShouldBe)
	ctx.Step(`^the config output should contain "([^"]*)"$`, c.theConfigOutputShouldContain)
	ctx.Step(`^the config command should fail with "([^"]*)"$`, c.theConfigCommandShouldFailWith)
	ctx.Step(`^reloading the file should give "([^"]*)" = "([^"]*)"$`, c.reloadingTheFileShouldGive)
}

func (c *configContext) aConfigurationFileContaining(name string, content *godog.DocString) error {
	c.configPath = filepath.Join(c.tempDir, name)
	return os.WriteFile(c.configPath, []byte(content.Content), 0644)
}

func (c *configContext) noConfigurationFileExists(name string) error {
	c.configPath = filepath.Join(c.tempDir, name)
	return nil
}

func (c *configContext) iLoadTheConfiguration() error {
	c.cfg, c.err = config.LoadOrDefault(c.configPath)
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	return nil
}

func (c *configContext) iAttemptToLoadTheConfiguration() error {
	c.cfg, c.err = config.LoadOrDefault(c.configPath)
	return nil
}

func (c *configContext) ensureLoaded() error {
	if c.cfg != nil {
		return nil
	}
	return c.iLoadTheConfiguration()
}

func (c *configContext) iSetConfigTo(key, value string) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}
	c.err = cmd.RunConfigSetWithDependencies(c.cfg, c.configPath, key, value, c.output)
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	return nil
}

func (c *configContext) iAttemptToSetConfigTo(key, value string) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}
	c.err = cmd.RunConfigSetWithDependencies(c.cfg, c.configPath, key, value, c.output)
	return nil
}

func (c *configContext) iGetConfig(key string) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}
	c.err = cmd.RunConfigGetWithDependencies(c.cfg, c.configPath, key, c.output)
	return nil
}

func (c *configContext) iListTheConfig() error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}
	c.err = cmd.RunConfigListWithDependencies(c.cfg, c.configPath, c.output)
	return c.err
}

func (c *configContext) theConfigValueShouldBe(key, expected string) error {
	got, err := config.NewConfigManager(c.cfg, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s %q, got %q", key, expected, got)
	}
	return nil
}

func (c *configContext) theConfigOutputShouldContain(text string) error {
	if out := c.output.String(); !strings.Contains(out, text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, out)
	}
	return nil
}

func (c *configContext) theConfigCommandShouldFailWith(msg string) error {
	if c.err == nil {
		return fmt.Errorf("expected an error containing %q, got none", msg)
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got: %v", msg, c.err)
	}
	return nil
}

func (c *configContext) reloadingTheFileShouldGive(key, expected string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	got, err := config.NewConfigManager(cfg, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s %q after reload, got %q", key, expected, got)
	}
	return nil
}
