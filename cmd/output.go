package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"video-to-audio/application/extract"
	"video-to-audio/domain/media"
)

// OutputWriter abstracts output for testing
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

var (
	styleHeading = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00225c", Dark: "#52aeff"}).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6e1a00", Dark: "#ffab91"})
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1b523d", Dark: "#78ffd6"}).Bold(true)
	styleBold    = lipgloss.NewStyle().Bold(true)
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// FileSizer provides file size information
type FileSizer interface {
	Size(path string) int64
}

// consoleObserver prints the plan before extraction and one line per step
type consoleObserver struct {
	out OutputWriter
}

func (o *consoleObserver) OnPlan(plan *media.ExtractionPlan) {
	s := plan.Summary
	fmt.Fprintf(o.out, "%s %s\n", styleBold.Render("Title:"), s.Title)
	fmt.Fprintf(o.out, "%s %s\n", styleBold.Render("Artist:"), s.Artist)
	fmt.Fprintf(o.out, "%s %s\n", styleBold.Render("Date:"), s.Date)
	if plan.Cover != nil {
		fmt.Fprintf(o.out, "%s %s\n", styleBold.Render("Cover:"), plan.Cover.OutputFilename)
	}

	if len(plan.Audio) == 0 {
		fmt.Fprintln(o.out, "\nNo audio tracks found in the video file.")
	} else {
		fmt.Fprintf(o.out, "\n%s\n%s\n", styleHeading.Render("Audio Streams Information"), trackTable(plan.Audio))
	}

	if len(plan.Subtitles) == 0 {
		fmt.Fprintln(o.out, "\nNo subtitle tracks found in the video file.")
	} else {
		fmt.Fprintf(o.out, "\n%s\n%s\n", styleHeading.Render("Subtitle Streams Information"), trackTable(plan.Subtitles))
	}
	fmt.Fprintln(o.out)
}

func (o *consoleObserver) OnStep(step extract.StepResult) {
	name := filepath.Base(step.Output)
	switch {
	case step.Skipped:
		fmt.Fprintf(o.out, "  %s %s (source not extracted)\n", styleError.Render("skip"), name)
	case step.Err != nil:
		fmt.Fprintf(o.out, "  %s %s: %v\n", styleError.Render("fail"), name, step.Err)
	default:
		fmt.Fprintf(o.out, "  %s %-7s %s\n", styleOK.Render("ok"), step.Stage, name)
	}
}

func trackTable(records []media.TrackRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.DeclaredOrder),
			r.RawFormat,
			r.Format,
			strconv.Itoa(r.ExtractionIndex),
			r.OutputFilename,
		})
	}
	return renderTable(
		[]string{"Stream", "Format", "Extension", "FFmpeg Index", "Output"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

// printSummary lists every produced file with its size
func printSummary(out OutputWriter, result *extract.Result, sizer FileSizer) {
	outputs := result.Outputs()
	rows := make([][]string, 0, len(outputs))
	var total uint64
	for _, path := range outputs {
		size := sizer.Size(path)
		if size > 0 {
			total += uint64(size)
		}
		rows = append(rows, []string{filepath.Base(path), humanize.Bytes(uint64(max(size, 0)))})
	}

	fmt.Fprintln(out)
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"File", "Size"}, rows, []columnAlignment{alignLeft, alignRight}))
	}

	failed := len(result.Failed())
	line := fmt.Sprintf("Produced %d file(s), %s total", len(outputs), humanize.Bytes(total))
	if failed > 0 {
		fmt.Fprintf(out, "%s; %s\n", line, styleError.Render(fmt.Sprintf("%d step(s) failed", failed)))
		return
	}
	fmt.Fprintln(out, styleOK.Render(line))
}
