package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"video-to-audio/domain/media"
	"video-to-audio/infrastructure/config"
	"video-to-audio/infrastructure/deps"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show whether the external tools are installed",
	Long: `Look up mediainfo, ffmpeg, and any extra commands listed under
tools.required on PATH and print where each one was found.

Example:
  video-to-audio check`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return RunCheckWithDependencies(cfg, deps.CheckBinaries, DefaultOutput)
}

// RunCheckWithDependencies renders the tool availability table
func RunCheckWithDependencies(cfg *config.Config, check func([]deps.Requirement) []deps.Status, out OutputWriter) error {
	statuses := check(requirements(cfg))

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := styleOK.Render("ok")
		location := s.Path
		if !s.Available {
			state = styleError.Render("missing")
			if s.Optional {
				state = "optional"
			}
			location = s.Detail
		}
		rows = append(rows, []string{s.Name, s.Command, s.Description, state, location})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Tool", "Command", "Used For", "Status", "Location"},
		rows,
		nil,
	))

	if missing := deps.Missing(statuses); len(missing) > 0 {
		return fmt.Errorf("%w: %d of %d", media.ErrMissingTools, len(missing), len(statuses))
	}
	return nil
}
