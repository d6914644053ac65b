package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"video-to-audio/infrastructure/config"
	"video-to-audio/infrastructure/token"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates the config file.

This command guides you through setting the tool locations, the output
directory, and the audio conversion settings.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, cfgFile, DefaultOutput)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, out OutputWriter) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite?", configPath), false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to video-to-audio setup!")
	fmt.Fprintln(out)

	cfg := config.Default()

	if err := promptTools(prompter, cfg); err != nil {
		return err
	}
	if err := promptOutput(prompter, cfg); err != nil {
		return err
	}
	if err := promptAudio(prompter, cfg); err != nil {
		return err
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

func promptTools(prompter Prompter, cfg *config.Config) error {
	mediainfo, err := prompter.Input("Path to the mediainfo command?", cfg.Tools.MediaInfo)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if mediainfo = strings.TrimSpace(mediainfo); mediainfo != "" {
		cfg.Tools.MediaInfo = mediainfo
	}

	ffmpeg, err := prompter.Input("Path to the ffmpeg command?", cfg.Tools.FFmpeg)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffmpeg = strings.TrimSpace(ffmpeg); ffmpeg != "" {
		cfg.Tools.FFmpeg = ffmpeg
	}
	return nil
}

func promptOutput(prompter Prompter, cfg *config.Config) error {
	dir, err := prompter.Input("Where should extracted files go?", cfg.Output.Directory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if dir = strings.TrimSpace(dir); dir != "" {
		cfg.Output.Directory = dir
	}

	overwrite, err := prompter.Confirm("Overwrite existing output files?", cfg.ShouldOverwrite())
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Output.Overwrite = &overwrite

	scheme, err := prompter.Select("How should runs be named?", []string{token.SchemeMillis, token.SchemeUUID}, token.SchemeMillis)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Output.RunToken = scheme
	return nil
}

func promptAudio(prompter Prompter, cfg *config.Config) error {
	bitrate, err := prompter.Input("Audio bitrate for mp3 conversion?", cfg.Audio.Bitrate)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if bitrate = strings.TrimSpace(bitrate); bitrate != "" {
		cfg.Audio.Bitrate = bitrate
	}

	tag, err := prompter.Confirm("Write title, artist, and cover art into mp3 files?", cfg.Tagging.Enabled)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Tagging.Enabled = tag
	return nil
}
