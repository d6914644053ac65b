package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"video-to-audio/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change configuration settings",
	Long: `Read and change individual settings in the configuration file.

Examples:
  video-to-audio config list
  video-to-audio config get audio.bitrate
  video-to-audio config set audio.bitrate 320k
  video-to-audio config set tagging.enabled true`,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

// --- LIST command ---

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigListWithDependencies(cfg, cfgFile, DefaultOutput)
	},
}

// RunConfigListWithDependencies renders all settings as a table
func RunConfigListWithDependencies(cfg *config.Config, configPath string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)

	settings := mgr.List()
	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		rows = append(rows, []string{s.Key, s.Value})
	}
	fmt.Fprintln(out, renderTable([]string{"Key", "Value"}, rows, nil))
	return nil
}

// --- GET command ---

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigGetWithDependencies(cfg, cfgFile, args[0], DefaultOutput)
	},
}

// RunConfigGetWithDependencies prints the value of key
func RunConfigGetWithDependencies(cfg *config.Config, configPath, key string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)

	value, err := mgr.Get(key)
	if err != nil {
		return fmt.Errorf("%w. Valid keys: %s", err, strings.Join(config.Keys(), ", "))
	}
	fmt.Fprintln(out, value)
	return nil
}

// --- SET command ---

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting and save the file",
	Long: `Change one setting and save the configuration file. List settings
take a comma separated value.

Examples:
  video-to-audio config set output.directory ~/Music/extracted
  video-to-audio config set output.run_token uuid
  video-to-audio config set output.run_token fixed:take1
  video-to-audio config set files.video_extensions .mkv,.mp4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigSetWithDependencies(cfg, cfgFile, args[0], args[1], DefaultOutput)
	},
}

// RunConfigSetWithDependencies updates key and saves the config file
func RunConfigSetWithDependencies(cfg *config.Config, configPath, key, value string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)

	if err := mgr.Set(key, value); err != nil {
		return err
	}
	current, err := mgr.Get(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Set %s = %s in %s\n", strings.ToLower(strings.TrimSpace(key)), current, configPath)
	return nil
}
