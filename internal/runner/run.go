package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"scorecard/internal/assessment"
	"scorecard/internal/config"
	"scorecard/internal/insights"
	"scorecard/internal/leaderboard"
	"scorecard/internal/report"
	"scorecard/internal/spec"
	"scorecard/internal/submission"
)

var (
	ErrDuplicateStudent = errors.New("duplicate student number")
	ErrReportNameTaken  = errors.New("report file name taken")
)

// Run scores every discovered submission, records the scores on the
// leaderboard, and renders one report per student.
//
// Assessment and rendering run on a bounded worker group. Leaderboard writes
// happen in between, sequentially and in discovery order, so ranks never
// depend on scheduling. A bad submission fails only itself.
func Run(ctx context.Context, cfg spec.Config, params RunParams) (Results, error) {
	if ctx == nil {
		return Results{}, errors.New("runner: context is nil")
	}
	repoRoot := params.RepoRoot
	if strings.TrimSpace(repoRoot) == "" {
		repoRoot = "."
	}
	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	startedAt := now()

	workers := cfg.Runner.Workers
	if workers < 1 {
		workers = 1
	}
	verboseWriter, warningWriter := wrapWriters(workers, params.VerboseWriter, params.WarningWriter)
	p := &pipeline{
		cfg:           cfg,
		verbose:       params.Verbose,
		verboseWriter: verboseWriter,
		warningWriter: warningWriter,
		noColor:       params.NoColor,
		emitter:       &eventEmitter{observer: params.Observer, now: now},
		now:           now,
	}

	inputs, err := LoadInputs(cfg, repoRoot)
	if err != nil {
		return Results{}, err
	}
	p.inputs = inputs
	if warning := inputs.KeyWarning(); warning != "" {
		p.warn("%s", warning)
	}

	outputDir := params.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.Report.OutputDir
	}
	p.outputDir = resolveOutputDir(repoRoot, outputDir)

	paths, err := submission.Discover(config.ResolvePath(repoRoot, cfg.Inputs.SubmissionsDir), cfg.Inputs.SubmissionsGlob)
	if err != nil {
		return Results{}, err
	}
	p.log(styleDefault, "Loaded %d questions, %d sections, %d submissions", inputs.Bank.Len(), len(inputs.Taxonomy.Sections), len(paths))

	openStore := params.Deps.OpenStore
	if openStore == nil {
		openStore = OpenStore
	}
	store, err := openStore(ctx, cfg, repoRoot, inputs.Exam(cfg.Report.TestName))
	if err != nil {
		return Results{}, fmt.Errorf("open leaderboard: %w", err)
	}
	defer store.Close()

	p.emitter.start(runID, cfg.Report.TestName, paths)
	jobs := make([]*job, len(paths))
	for i, path := range paths {
		jobs[i] = &job{index: i, result: SubmissionResult{Path: path, StudentID: submission.StudentIDFromPath(path)}}
		p.emit(jobs[i], SubmissionQueued)
	}

	if err := p.forEach(ctx, workers, jobs, p.assess); err != nil {
		return Results{}, err
	}
	entries, err := p.record(ctx, store, jobs)
	if err != nil {
		return Results{}, err
	}
	generatedAt := cfg.Report.GeneratedAt
	if generatedAt == "" {
		generatedAt = startedAt.Format(reportTimeLayout)
	}
	p.generatedAt = generatedAt
	p.entries = entries
	if err := p.forEach(ctx, workers, jobs, p.render); err != nil {
		return Results{}, err
	}

	submissions := make([]SubmissionResult, 0, len(jobs))
	for _, j := range jobs {
		submissions = append(submissions, j.result)
	}
	examKey := ""
	if keyed, ok := store.(interface{ ExamKey() string }); ok {
		examKey = keyed.ExamKey()
	}
	results := Results{
		RunID:       runID,
		TestName:    cfg.Report.TestName,
		ExamKey:     examKey,
		StartedAt:   startedAt,
		FinishedAt:  now(),
		Submissions: submissions,
		Summary:     summarize(submissions),
	}
	p.log(styleMetrics, "Run %s finished: %s average=%.2f%%", runID, formatStatusCounts(submissions), results.Summary.AveragePercentage)
	p.emitter.end(results)
	return results, nil
}

// RunAndWrite runs and writes results.json under the output directory.
func RunAndWrite(ctx context.Context, cfg spec.Config, params RunParams) (Results, OutputPaths, error) {
	results, err := Run(ctx, cfg, params)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	outputDir := params.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.Report.OutputDir
	}
	repoRoot := params.RepoRoot
	if strings.TrimSpace(repoRoot) == "" {
		repoRoot = "."
	}
	paths, err := WriteRunOutputs(results, resolveOutputDir(repoRoot, outputDir))
	if err != nil {
		return results, OutputPaths{}, err
	}
	return results, paths, nil
}

type job struct {
	index    int
	result   SubmissionResult
	assessed *assessment.Result
	failed   bool
}

type pipeline struct {
	cfg           spec.Config
	inputs        Inputs
	outputDir     string
	generatedAt   string
	entries       []leaderboard.Entry
	verbose       bool
	verboseWriter io.Writer
	warningWriter io.Writer
	noColor       bool
	emitter       *eventEmitter
	now           func() time.Time
}

// forEach runs step over the jobs that have not failed with at most
// workers in flight.
func (p *pipeline) forEach(ctx context.Context, workers int, jobs []*job, step func(context.Context, *job)) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, j := range jobs {
		if j.failed {
			continue
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			step(groupCtx, j)
			return nil
		})
	}
	return group.Wait()
}

func (p *pipeline) assess(_ context.Context, j *job) {
	p.emit(j, SubmissionAssessing)
	sub, err := submission.Load(j.result.Path)
	if err != nil {
		p.fail(j, err)
		return
	}
	j.result.StudentID = strings.TrimSpace(sub.StudentID)
	j.result.Name = sub.DisplayName(j.result.StudentID)
	if j.result.StudentID == "" {
		p.fail(j, leaderboard.ErrEmptyStudentNumber)
		return
	}
	answers, err := sub.StudentAnswers()
	if err != nil {
		p.fail(j, err)
		return
	}
	opts := assessment.Options{ImplicitSkips: p.cfg.Assessment.ImplicitSkipsEnabled()}
	result := assessment.Evaluate(answers, p.inputs.Key, p.inputs.Taxonomy, opts)
	for _, issue := range result.Breakdown.Issues {
		p.warn("%s: skipped topic %q in section %q (%s): %s", j.result.StudentID, issue.Topic, issue.Section, issue.Spec, issue.Message)
	}
	j.assessed = &result
	j.result.Result = &result
	j.result.Percentage = leaderboard.Percentage(result.Summary.Correct, result.Summary.TotalQuestions)
	p.log(styleSubmission, "Assessed %s: %d/%d correct (%.2f%%)", j.result.StudentID, result.Summary.Correct, result.Summary.TotalQuestions, j.result.Percentage)
	p.emit(j, SubmissionAssessed)
}

// record upserts every assessed submission and returns the resulting
// leaderboard. A rejected write fails only its submission. The first
// submission to claim a student number or report file keeps it.
func (p *pipeline) record(ctx context.Context, store leaderboard.Store, jobs []*job) ([]leaderboard.Entry, error) {
	recorder, recordsSections := store.(leaderboard.SectionRecorder)
	students := make(map[string]string, len(jobs))
	reports := make(map[string]string, len(jobs))
	for _, j := range jobs {
		if j.failed {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if first, ok := students[j.result.StudentID]; ok {
			p.fail(j, fmt.Errorf("%w: %s already scored from %s", ErrDuplicateStudent, j.result.StudentID, first))
			continue
		}
		fileName := report.FileName(p.cfg.Report.TestName, j.result.Name, j.result.StudentID)
		if first, ok := reports[fileName]; ok {
			p.fail(j, fmt.Errorf("%w: %s already written for %s", ErrReportNameTaken, fileName, first))
			continue
		}
		summary := j.assessed.Summary
		entry := leaderboard.NewEntry(j.result.StudentID, j.result.Name, summary.Correct, summary.TotalQuestions, p.now())
		if err := store.Upsert(ctx, entry); err != nil {
			p.fail(j, fmt.Errorf("record score for %s: %w", j.result.StudentID, err))
			continue
		}
		if recordsSections {
			if err := recorder.RecordSections(ctx, entry.StudentNumber, leaderboard.SectionScores(j.assessed.Breakdown)); err != nil {
				p.fail(j, fmt.Errorf("record sections for %s: %w", j.result.StudentID, err))
				continue
			}
		}
		students[j.result.StudentID] = j.result.Path
		reports[fileName] = j.result.StudentID
	}
	entries, err := store.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	p.log(styleDefault, "Leaderboard holds %d students", len(entries))
	return entries, nil
}

func (p *pipeline) render(ctx context.Context, j *job) {
	if standing, ok := leaderboard.Rank(p.entries, j.result.StudentID, p.cfg.Leaderboard.DisplayCap); ok {
		j.result.Standing = &standing
	}
	p.emit(j, SubmissionRendering)
	built := p.inputs.Library.Build(insights.Input{
		StudentID:  j.result.StudentID,
		Name:       j.result.Name,
		Result:     *j.assessed,
		Thresholds: p.cfg.Assessment.Thresholds,
		Standing:   j.result.Standing,
	})
	model := report.BuildModel(report.Input{
		Title:       p.cfg.Report.Title,
		TestName:    p.cfg.Report.TestName,
		TestDate:    p.cfg.Report.TestDate,
		GeneratedAt: p.generatedAt,
		StudentID:   j.result.StudentID,
		StudentName: j.result.Name,
		Result:      *j.assessed,
		Insights:    built,
	})
	path, err := report.Write(ctx, p.outputDir, model)
	if err != nil {
		p.fail(j, err)
		return
	}
	j.result.ReportPath = path
	j.result.Status = StatusDone
	p.log(styleSubmission, "Wrote %s", path)
	p.emit(j, SubmissionDone)
}

func (p *pipeline) fail(j *job, err error) {
	j.failed = true
	reason := err.Error()
	j.result.Status = StatusFailed
	j.result.FailureReason = &reason
	j.result.Result = nil
	p.warn("%s: %v", j.result.Path, err)
	p.emit(j, SubmissionFailed)
}

func (p *pipeline) emit(j *job, eventType SubmissionEventType) {
	event := SubmissionEvent{
		Index:      j.index,
		Path:       j.result.Path,
		StudentID:  j.result.StudentID,
		Name:       j.result.Name,
		Type:       eventType,
		Percentage: j.result.Percentage,
		Standing:   j.result.Standing,
		ReportPath: j.result.ReportPath,
	}
	if j.result.FailureReason != nil {
		event.Error = *j.result.FailureReason
	}
	p.emitter.emit(event)
}

func (p *pipeline) log(style verboseStyle, format string, args ...any) {
	logVerbose(p.verbose, p.verboseWriter, p.noColor, style, format, args...)
}

func (p *pipeline) warn(format string, args ...any) {
	if p.warningWriter == nil {
		return
	}
	fmt.Fprintf(p.warningWriter, "warning: "+format+"\n", args...)
}

func resolveOutputDir(repoRoot, outputDir string) string {
	if outputDir == "" || filepath.IsAbs(outputDir) {
		return outputDir
	}
	return filepath.Join(repoRoot, outputDir)
}
