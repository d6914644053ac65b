//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"video-to-audio/cmd"
	"video-to-audio/domain/media"
	"video-to-audio/infrastructure/config"
	"video-to-audio/infrastructure/deps"
	"video-to-audio/infrastructure/logging"
)

// mockFiles keeps the files a run "creates" in memory
type mockFiles struct {
	contents map[string][]byte
}

func (m *mockFiles) Exists(path string) bool {
	_, ok := m.contents[path]
	return ok
}

func (m *mockFiles) ReadFile(path string) ([]byte, error) {
	data, ok := m.contents[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *mockFiles) Size(path string) int64 {
	return int64(len(m.contents[path]))
}

// mockProber writes the scenario's document to the requested path
type mockProber struct {
	files *mockFiles
	doc   string
	err   error
	calls int
}

func (m *mockProber) Probe(ctx context.Context, inputPath, outputPath string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.files.contents[outputPath] = []byte(m.doc)
	return nil
}

type streamCall struct {
	kind   media.Kind
	index  int
	output string
}

// mockExtractor records the streams requested
type mockExtractor struct {
	files   *mockFiles
	fail    map[string]bool
	streams []streamCall
	covers  []string
}

func (m *mockExtractor) ExtractStream(ctx context.Context, inputPath string, kind media.Kind, index int, outputPath string) error {
	m.streams = append(m.streams, streamCall{kind: kind, index: index, output: filepath.Base(outputPath)})
	if m.fail[filepath.Base(outputPath)] {
		return errors.New("exit status 1")
	}
	m.files.contents[outputPath] = []byte("stream")
	return nil
}

func (m *mockExtractor) ExtractCover(ctx context.Context, inputPath, outputPath string) error {
	m.covers = append(m.covers, filepath.Base(outputPath))
	m.files.contents[outputPath] = []byte("cover")
	return nil
}

// mockConverter records the conversions requested
type mockConverter struct {
	files *mockFiles
	calls [][2]string
}

func (m *mockConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	m.calls = append(m.calls, [2]string{filepath.Base(inputPath), filepath.Base(outputPath)})
	m.files.contents[outputPath] = []byte("converted")
	return nil
}

type fixedToken string

func (f fixedToken) Next() media.RunToken { return media.RunToken(f) }

// mockLock fails to acquire when held is set
type mockLock struct {
	held bool
}

func (m *mockLock) Acquire() error {
	if m.held {
		return fmt.Errorf("%w: lock held", media.ErrRunLocked)
	}
	return nil
}

func (m *mockLock) Release() error { return nil }

// extractContext holds test state for extract scenarios
type extractContext struct {
	sourcePath string
	dir        string
	missing    map[string]bool
	token      string
	cfg        *config.Config
	files      *mockFiles
	prober     *mockProber
	extractor  *mockExtractor
	converter  *mockConverter
	lock       *mockLock
	output     *bytes.Buffer
	err        error
}

// SharedExtractContext is reset before each scenario via Before hook
var SharedExtractContext *extractContext

func getExtractContext() *extractContext {
	return SharedExtractContext
}

func InitializeExtractScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		outDir, err := os.MkdirTemp("", "extract-test-*")
		if err != nil {
			return c, err
		}
		cfg := config.Default()
		cfg.Output.Directory = outDir

		files := &mockFiles{contents: make(map[string][]byte)}
		SharedExtractContext = &extractContext{
			missing:   make(map[string]bool),
			token:     "1000",
			cfg:       cfg,
			files:     files,
			prober:    &mockProber{files: files},
			extractor: &mockExtractor{files: files, fail: make(map[string]bool)},
			converter: &mockConverter{files: files},
			lock:      &mockLock{},
			output:    &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if e := SharedExtractContext; e != nil {
			os.RemoveAll(e.cfg.Output.Directory)
			if e.dir != "" {
				os.RemoveAll(e.dir)
			}
		}
		SharedExtractContext = nil
		return c, nil
	})

	ctx.Step(`^the required tools are installed$`, theRequiredToolsAreInstalled)
	ctx.Step(`^"([^"]*)" is not installed$`, isNotInstalled)
	ctx.Step(`^a video file at "([^"]*)"$`, aVideoFileAt)
	ctx.Step(`^a directory containing:$`, aDirectoryContaining)
	ctx.Step(`^the run token is "([^"]*)"$`, theRunTokenIs)
	ctx.Step(`^the probe reports:$`, theProbeReports)
	ctx.Step(`^the probe fails with "([^"]*)"$`, theProbeFailsWith)
	ctx.Step(`^extracting "([^"]*)" fails$`, extractingFails)
	ctx.Step(`^another run holds the output directory$`, anotherRunHoldsTheOutputDirectory)
	ctx.Step(`^I run the extraction$`, iRunTheExtraction)
	ctx.Step(`^I attempt to run the extraction$`, iAttemptToRunTheExtraction)
	ctx.Step(`^I run the directory pass$`, iRunTheDirectoryPass)
	ctx.Step(`^the run should succeed$`, theRunShouldSucceed)
	ctx.Step(`^the run should fail with "([^"]*)"$`, theRunShouldFailWith)
	ctx.Step(`^these streams should have been extracted:$`, theseStreamsShouldHaveBeenExtracted)
	ctx.Step(`^these files should have been converted:$`, theseFilesShouldHaveBeenConverted)
	ctx.Step(`^no files should have been converted$`, noFilesShouldHaveBeenConverted)
	ctx.Step(`^no streams should have been extracted$`, noStreamsShouldHaveBeenExtracted)
	ctx.Step(`^the cover should have been extracted to "([^"]*)"$`, theCoverShouldHaveBeenExtractedTo)
	ctx.Step(`^the probe should not have run$`, theProbeShouldNotHaveRun)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
	ctx.Step(`^the output should not contain "([^"]*)"$`, theOutputShouldNotContain)
	ctx.Step(`^the output should list "([^"]*)" before "([^"]*)"$`, theOutputShouldListBefore)
}

func theRequiredToolsAreInstalled() error {
	getExtractContext().missing = make(map[string]bool)
	return nil
}

func isNotInstalled(command string) error {
	getExtractContext().missing[command] = true
	return nil
}

func aVideoFileAt(path string) error {
	e := getExtractContext()
	e.sourcePath = path
	e.files.contents[path] = []byte("video")
	return nil
}

func aDirectoryContaining(table *godog.Table) error {
	e := getExtractContext()
	dir, err := os.MkdirTemp("", "extract-dir-*")
	if err != nil {
		return err
	}
	e.dir = dir
	for _, row := range table.Rows[1:] {
		if err := os.WriteFile(filepath.Join(dir, row.Cells[0].Value), nil, 0644); err != nil {
			return err
		}
	}
	return nil
}

func theRunTokenIs(token string) error {
	getExtractContext().token = token
	return nil
}

func theProbeReports(doc *godog.DocString) error {
	getExtractContext().prober.doc = doc.Content
	return nil
}

func theProbeFailsWith(msg string) error {
	getExtractContext().prober.err = errors.New(msg)
	return nil
}

func extractingFails(name string) error {
	getExtractContext().extractor.fail[name] = true
	return nil
}

func anotherRunHoldsTheOutputDirectory() error {
	getExtractContext().lock.held = true
	return nil
}

func (e *extractContext) dependencies() *cmd.RunDependencies {
	return &cmd.RunDependencies{
		Prober:    e.prober,
		Extractor: e.extractor,
		Converter: e.converter,
		Files:     e.files,
		Tokens:    fixedToken(e.token),
		CheckTools: func(reqs []deps.Requirement) []deps.Status {
			statuses := make([]deps.Status, 0, len(reqs))
			for _, r := range reqs {
				s := deps.Status{Requirement: r, Available: !e.missing[r.Command]}
				if s.Available {
					s.Path = "/usr/bin/" + r.Command
				} else {
					s.Detail = fmt.Sprintf("binary %q not found", r.Command)
				}
				statuses = append(statuses, s)
			}
			return statuses
		},
		NewLock: func(string) cmd.RunLocker { return e.lock },
		Logger:  logging.Discard(),
	}
}

func iRunTheExtraction() error {
	e := getExtractContext()
	e.err = cmd.RunFileWithDependencies(context.Background(), e.sourcePath, e.cfg, e.dependencies(), e.output)
	if e.err != nil {
		return fmt.Errorf("unexpected error: %v", e.err)
	}
	return nil
}

func iAttemptToRunTheExtraction() error {
	e := getExtractContext()
	e.err = cmd.RunFileWithDependencies(context.Background(), e.sourcePath, e.cfg, e.dependencies(), e.output)
	return nil
}

func iRunTheDirectoryPass() error {
	e := getExtractContext()
	e.err = cmd.RunDirectoryWithDependencies(e.dir, e.cfg, e.dependencies(), e.output)
	return nil
}

func theRunShouldSucceed() error {
	if err := getExtractContext().err; err != nil {
		return fmt.Errorf("expected success, got: %v", err)
	}
	return nil
}

func theRunShouldFailWith(msg string) error {
	e := getExtractContext()
	if e.err == nil {
		return fmt.Errorf("expected an error containing %q, got none", msg)
	}
	if !strings.Contains(e.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got: %v", msg, e.err)
	}
	return nil
}

func theseStreamsShouldHaveBeenExtracted(table *godog.Table) error {
	e := getExtractContext()
	rows := table.Rows[1:]
	if len(e.extractor.streams) != len(rows) {
		return fmt.Errorf("expected %d extractions, got %d: %+v", len(rows), len(e.extractor.streams), e.extractor.streams)
	}
	for i, row := range rows {
		index, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		want := streamCall{kind: kindFromName(row.Cells[0].Value), index: index, output: row.Cells[2].Value}
		if e.extractor.streams[i] != want {
			return fmt.Errorf("extraction %d: expected %+v, got %+v", i, want, e.extractor.streams[i])
		}
	}
	return nil
}

func kindFromName(name string) media.Kind {
	switch name {
	case "audio":
		return media.KindAudio
	case "subtitle":
		return media.KindSubtitle
	default:
		return media.KindOther
	}
}

func theseFilesShouldHaveBeenConverted(table *godog.Table) error {
	e := getExtractContext()
	rows := table.Rows[1:]
	if len(e.converter.calls) != len(rows) {
		return fmt.Errorf("expected %d conversions, got %d: %v", len(rows), len(e.converter.calls), e.converter.calls)
	}
	for i, row := range rows {
		want := [2]string{row.Cells[0].Value, row.Cells[1].Value}
		if e.converter.calls[i] != want {
			return fmt.Errorf("conversion %d: expected %v, got %v", i, want, e.converter.calls[i])
		}
	}
	return nil
}

func noFilesShouldHaveBeenConverted() error {
	if calls := getExtractContext().converter.calls; len(calls) != 0 {
		return fmt.Errorf("expected no conversions, got %v", calls)
	}
	return nil
}

func noStreamsShouldHaveBeenExtracted() error {
	e := getExtractContext()
	if n := len(e.extractor.streams) + len(e.extractor.covers); n != 0 {
		return fmt.Errorf("expected no extractions, got %d", n)
	}
	return nil
}

func theCoverShouldHaveBeenExtractedTo(name string) error {
	covers := getExtractContext().extractor.covers
	if len(covers) != 1 || covers[0] != name {
		return fmt.Errorf("expected cover %q, got %v", name, covers)
	}
	return nil
}

func theProbeShouldNotHaveRun() error {
	if calls := getExtractContext().prober.calls; calls != 0 {
		return fmt.Errorf("expected no probe calls, got %d", calls)
	}
	return nil
}

func theOutputShouldContain(text string) error {
	if out := getExtractContext().output.String(); !strings.Contains(out, text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, out)
	}
	return nil
}

func theOutputShouldNotContain(text string) error {
	if out := getExtractContext().output.String(); strings.Contains(out, text) {
		return fmt.Errorf("expected output not to contain %q, got:\n%s", text, out)
	}
	return nil
}

func theOutputShouldListBefore(first, second string) error {
	out := getExtractContext().output.String()
	i, j := strings.Index(out, first), strings.Index(out, second)
	if i < 0 || j < 0 {
		return fmt.Errorf("expected output to list %q and %q, got:\n%s", first, second, out)
	}
	if i > j {
		return fmt.Errorf("expected %q before %q", first, second)
	}
	return nil
}
