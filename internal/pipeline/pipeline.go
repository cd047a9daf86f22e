package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"foliogen/internal/logging"
	"foliogen/internal/notify"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

// Pipeline stages, in execution order
const (
	StageIdle       = "idle"
	StageExtracting = "extracting"
	StageAnalyzing  = "analyzing"
	StageGenerating = "generating"
	StagePersisting = "persisting"
	StageDone       = "done"
)

// DocumentExtractor turns a source document into a plain-text transcript
type DocumentExtractor interface {
	Extract(path string) (string, error)
}

// Analyzer maps raw CV text onto a structured record (Phase 1)
type Analyzer interface {
	Analyze(ctx context.Context, rawText string) (*models.CV, error)
}

// Generator maps a structured record onto a portfolio page (Phase 2)
type Generator interface {
	Generate(ctx context.Context, cv *models.CV) (string, error)
}

// ArtifactStore persists intermediate and final pipeline artifacts
type ArtifactStore interface {
	SaveRawText(text string) (string, error)
	SaveCVData(cv *models.CV) (string, error)
	SaveSite(html string, stem string, now time.Time) (string, string, error)
}

// Pipeline drives one document through extraction, analysis, generation and
// persistence. Intermediate artifacts are written the moment their stage
// completes, so a later failure keeps everything produced before it.
type Pipeline struct {
	extractor DocumentExtractor
	analyzer  Analyzer
	generator Generator
	store     ArtifactStore
	notifier  notify.Notifier
	logger    logging.Logger
}

// New assembles a pipeline from its collaborators
func New(extractor DocumentExtractor, analyzer Analyzer, generator Generator, store ArtifactStore, notifier notify.Notifier) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		analyzer:  analyzer,
		generator: generator,
		store:     store,
		notifier:  notifier,
		logger:    logging.GetGlobalLogger(),
	}
}

// Run processes the document at docPath end to end. The returned result is
// never nil; Success is false when any stage but persistence of intermediates
// failed, and Stage names where the run stopped.
func (p *Pipeline) Run(ctx context.Context, docPath string) *models.RunResult {
	startTime := time.Now()
	requestID := utils.GenerateRequestID()
	logger := logging.LogWithRequestID(requestID)

	result := &models.RunResult{
		Stage:     StageIdle,
		RequestID: requestID,
	}

	logger.Info("Pipeline run starting", map[string]interface{}{
		"document": docPath,
	})

	// Stage 1: document text extraction
	result.Stage = StageExtracting
	rawText, err := p.extractor.Extract(docPath)
	if err != nil {
		return p.fail(result, err, startTime)
	}
	rawTextPath, err := p.store.SaveRawText(rawText)
	if err != nil {
		return p.fail(result, err, startTime)
	}
	result.Artifacts.RawTextPath = rawTextPath

	// Stage 2: structured extraction (Phase 1, brain model)
	result.Stage = StageAnalyzing
	cv, err := p.analyzer.Analyze(ctx, rawText)
	if err != nil {
		return p.fail(result, err, startTime)
	}
	if cv.IsEmpty() {
		return p.fail(result, utils.NewExtractionParseError("analysis produced an empty record"), startTime)
	}
	dataPath, err := p.store.SaveCVData(cv)
	if err != nil {
		return p.fail(result, err, startTime)
	}
	result.Artifacts.DataPath = dataPath

	// Stage 3: site generation (Phase 2, coder model)
	result.Stage = StageGenerating
	html, err := p.generator.Generate(ctx, cv)
	if err != nil {
		return p.fail(result, err, startTime)
	}

	// Stage 4: final persistence
	result.Stage = StagePersisting
	indexPath, archivePath, err := p.store.SaveSite(html, documentStem(docPath), time.Now())
	if err != nil {
		return p.fail(result, err, startTime)
	}
	result.Artifacts.IndexPath = indexPath
	result.Artifacts.ArchivePath = archivePath

	result.Stage = StageDone
	result.Success = true
	result.ProcessingTime = time.Since(startTime)

	logger.Info("Pipeline run complete", map[string]interface{}{
		"index":           indexPath,
		"archive":         archivePath,
		"processing_time": result.ProcessingTime.String(),
	})
	p.notifier.Notify(notify.StatusSuccess, "Portfolio generated",
		fmt.Sprintf("Site written to %s in %s", indexPath, utils.FormatDuration(result.ProcessingTime)))

	return result
}

// fail finalizes result for an error at the current stage and emits the
// failure notification
func (p *Pipeline) fail(result *models.RunResult, err error, startTime time.Time) *models.RunResult {
	result.Success = false
	result.Error = err.Error()
	result.ErrorKind = string(utils.KindOf(err))
	result.ProcessingTime = time.Since(startTime)

	logging.LogWithRequestID(result.RequestID).Error("Pipeline run failed", map[string]interface{}{
		"stage":      result.Stage,
		"error_kind": result.ErrorKind,
		"error":      result.Error,
	})
	p.notifier.Notify(notify.StatusFailure, "Portfolio generation failed",
		fmt.Sprintf("Stage %s: %s", result.Stage, result.Error))

	return result
}

// documentStem is the source filename without directory or extension, used to
// name the archived site copy
func documentStem(docPath string) string {
	base := filepath.Base(docPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
