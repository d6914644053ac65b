package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"video-to-audio/domain/media"
)

// Stage names one kind of external call made during a run
type Stage string

const (
	StageExtract Stage = "extract"
	StageConvert Stage = "convert"
	StageTag     Stage = "tag"
)

// Files combines the file operations the service needs
type Files interface {
	media.FileChecker
	media.DocumentReader
}

// Options controls where outputs go and which formats they end up in
type Options struct {
	OutputDir    string
	AudioFormat  string
	LyricsFormat string
}

func (o Options) withDefaults() Options {
	if o.AudioFormat == "" {
		o.AudioFormat = media.DefaultAudioFormat
	}
	if o.LyricsFormat == "" {
		o.LyricsFormat = media.DefaultLyricsFormat
	}
	return o
}

// Input contains the parameters for one extraction run
type Input struct {
	SourcePath string
}

// StepResult records one extraction, conversion, or tagging call
type StepResult struct {
	Stage   Stage
	Kind    media.Kind
	Input   string
	Output  string
	Err     error
	Skipped bool
}

// OK reports whether the step ran and produced its output
func (s StepResult) OK() bool {
	return s.Err == nil && !s.Skipped
}

// Result contains everything a run produced
type Result struct {
	Token        media.RunToken
	MetadataPath string
	Plan         *media.ExtractionPlan
	Steps        []StepResult
}

// Failed returns the steps that returned an error
func (r *Result) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// Outputs returns the paths of every file the run produced, in order
func (r *Result) Outputs() []string {
	var out []string
	for _, s := range r.Steps {
		if s.OK() && s.Stage != StageTag {
			out = append(out, s.Output)
		}
	}
	return out
}

// Option configures the Service
type Option func(*Service)

// WithTagger enables tagging of mp3 outputs
func WithTagger(t media.Tagger) Option {
	return func(s *Service) {
		s.tagger = t
	}
}

// WithObserver sets the progress observer
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service runs the probe, extraction, and conversion pipeline for one file
type Service struct {
	prober    media.Prober
	extractor media.StreamExtractor
	converter media.Converter
	tagger    media.Tagger
	files     Files
	tokens    media.TokenSource
	opts      Options
	observer  Observer
	logger    *log.Logger
}

// NewService creates a new extraction service
func NewService(
	prober media.Prober,
	extractor media.StreamExtractor,
	converter media.Converter,
	files Files,
	tokens media.TokenSource,
	opts Options,
	options ...Option,
) *Service {
	s := &Service{
		prober:    prober,
		extractor: extractor,
		converter: converter,
		files:     files,
		tokens:    tokens,
		opts:      opts.withDefaults(),
		observer:  NopObserver{},
		logger:    log.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Run probes the source, extracts every classified stream, and converts the
// results. Probe and decode failures abort the run before any extraction;
// individual extraction or conversion failures are recorded and skipped.
func (s *Service) Run(ctx context.Context, input Input) (*Result, error) {
	if input.SourcePath == "" {
		return nil, errors.New("source path is required")
	}
	if !s.files.Exists(input.SourcePath) {
		return nil, fmt.Errorf("source video does not exist: %s", input.SourcePath)
	}

	token := s.tokens.Next()
	metadataPath, err := s.resolve(media.MetadataFilename(token))
	if err != nil {
		return nil, err
	}
	result := &Result{
		Token:        token,
		MetadataPath: metadataPath,
	}
	logger := s.logger.With("token", string(token))

	logger.Info("probing source", "source", input.SourcePath, "metadata", result.MetadataPath)
	if err := s.prober.Probe(ctx, input.SourcePath, result.MetadataPath); err != nil {
		if !errors.Is(err, media.ErrProbeFailed) {
			err = fmt.Errorf("%w: %v", media.ErrProbeFailed, err)
		}
		return result, err
	}

	if !s.files.Exists(result.MetadataPath) {
		return result, fmt.Errorf("%w: %s", media.ErrMissingDocument, result.MetadataPath)
	}
	data, err := s.files.ReadFile(result.MetadataPath)
	if err != nil {
		return result, fmt.Errorf("failed to read metadata document: %w", err)
	}
	doc, err := media.ParseDocument(data)
	if err != nil {
		return result, fmt.Errorf("failed to decode metadata document: %w", err)
	}

	plan := media.Plan(media.Classify(doc), token)
	result.Plan = plan
	logger.Info("classified tracks",
		"audio", len(plan.Audio),
		"subtitles", len(plan.Subtitles),
		"cover", plan.Cover != nil)
	s.observer.OnPlan(plan)

	produced := make(map[string]bool)
	record := func(step StepResult) {
		if step.OK() && step.Stage != StageTag {
			produced[step.Output] = true
		}
		result.Steps = append(result.Steps, step)
		s.observer.OnStep(step)
	}

	for _, step := range s.extractAll(ctx, logger, input.SourcePath, plan) {
		record(step)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	for _, step := range s.convertAll(ctx, logger, plan, produced) {
		record(step)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if s.tagger != nil {
		for _, step := range s.tagAll(logger, plan, produced) {
			record(step)
		}
	}

	logger.Info("run complete", "outputs", len(result.Outputs()), "failed", len(result.Failed()))
	return result, nil
}

func (s *Service) extractAll(ctx context.Context, logger *log.Logger, source string, plan *media.ExtractionPlan) []StepResult {
	var steps []StepResult

	if plan.Cover != nil {
		out, err := s.resolve(plan.Cover.OutputFilename)
		if err == nil {
			err = s.extractor.ExtractCover(ctx, source, out)
		} else {
			out = plan.Cover.OutputFilename
		}
		steps = append(steps, s.checkOutput(logger, StepResult{
			Stage:  StageExtract,
			Kind:   media.KindOther,
			Input:  source,
			Output: out,
			Err:    err,
		}))
	}

	records := append(append([]media.TrackRecord(nil), plan.Audio...), plan.Subtitles...)
	for _, r := range records {
		if ctx.Err() != nil {
			break
		}
		out, err := s.resolve(r.OutputFilename)
		if err == nil {
			logger.Debug("extracting stream", "kind", r.Kind, "index", r.ExtractionIndex, "output", out)
			err = s.extractor.ExtractStream(ctx, source, r.Kind, r.ExtractionIndex, out)
		} else {
			out = r.OutputFilename
		}
		steps = append(steps, s.checkOutput(logger, StepResult{
			Stage:  StageExtract,
			Kind:   r.Kind,
			Input:  source,
			Output: out,
			Err:    err,
		}))
	}
	return steps
}

func (s *Service) convertAll(ctx context.Context, logger *log.Logger, plan *media.ExtractionPlan, produced map[string]bool) []StepResult {
	reqs := media.PlanAudioConversions(plan.Audio, s.opts.AudioFormat)
	reqs = append(reqs, media.PlanLyricsConversions(plan.Subtitles, s.opts.LyricsFormat)...)

	var steps []StepResult
	for _, req := range reqs {
		if ctx.Err() != nil {
			break
		}
		in, inErr := s.resolve(req.Input)
		out, outErr := s.resolve(req.Output)
		step := StepResult{Stage: StageConvert, Kind: req.Kind, Input: in, Output: out}

		if err := errors.Join(inErr, outErr); err != nil {
			step.Input, step.Output, step.Err = req.Input, req.Output, err
			steps = append(steps, s.checkOutput(logger, step))
			continue
		}
		if !produced[in] {
			logger.Warn("skipping conversion, source was not extracted", "input", in)
			step.Skipped = true
			steps = append(steps, step)
			continue
		}

		logger.Debug("converting", "input", in, "output", out)
		step.Err = s.converter.Convert(ctx, in, out)
		steps = append(steps, s.checkOutput(logger, step))
	}
	return steps
}

func (s *Service) tagAll(logger *log.Logger, plan *media.ExtractionPlan, produced map[string]bool) []StepResult {
	tags := media.Tags{
		Title:     plan.Summary.Title,
		Artist:    plan.Summary.Artist,
		Date:      plan.Summary.Date,
		SourceURL: plan.Summary.SourceURL,
	}
	if plan.Cover != nil {
		if cover, err := s.resolve(plan.Cover.OutputFilename); err == nil && produced[cover] {
			tags.CoverPath = cover
		}
	}

	var steps []StepResult
	for path := range s.audioOutputs(plan, produced) {
		step := StepResult{Stage: StageTag, Kind: media.KindAudio, Input: path, Output: path}
		if err := s.tagger.Tag(path, tags); err != nil {
			logger.Warn("failed to tag audio", "path", path, "err", err)
			step.Err = err
		}
		steps = append(steps, step)
	}
	return steps
}

// audioOutputs yields produced audio files already in the target format, in
// plan order followed by conversion order.
func (s *Service) audioOutputs(plan *media.ExtractionPlan, produced map[string]bool) func(func(string) bool) {
	target := "." + strings.ToLower(s.opts.AudioFormat)
	return func(yield func(string) bool) {
		for _, r := range plan.Audio {
			path, err := s.resolve(r.OutputFilename)
			if err == nil && produced[path] && strings.EqualFold(filepath.Ext(path), target) {
				if !yield(path) {
					return
				}
			}
		}
		for _, req := range media.PlanAudioConversions(plan.Audio, s.opts.AudioFormat) {
			path, err := s.resolve(req.Output)
			if err == nil && produced[path] {
				if !yield(path) {
					return
				}
			}
		}
	}
}

// checkOutput logs a failed call, and treats a call that returned nil but
// left no file behind as failed.
func (s *Service) checkOutput(logger *log.Logger, step StepResult) StepResult {
	if step.Err == nil && !s.files.Exists(step.Output) {
		step.Err = fmt.Errorf("output file was not created: %s", step.Output)
	}
	if step.Err != nil {
		logger.Error("step failed", "stage", step.Stage, "kind", step.Kind, "output", step.Output, "err", step.Err)
	}
	return step
}

// resolve places name in the output directory. Names are built from track
// format strings, so one that would escape the directory is refused.
func (s *Service) resolve(name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", media.ErrUnsafeOutputName, name)
	}
	return s.outputPath(name), nil
}

func (s *Service) outputPath(name string) string {
	if s.opts.OutputDir == "" {
		return name
	}
	return filepath.Join(s.opts.OutputDir, name)
}
