package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogen/internal/notify"
	"foliogen/internal/storage"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(path string) (string, error) {
	return f.text, f.err
}

type fakeAnalyzer struct {
	cv  *models.CV
	err error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, rawText string) (*models.CV, error) {
	return f.cv, f.err
}

type fakeGenerator struct {
	html string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, cv *models.CV) (string, error) {
	return f.html, f.err
}

type recordingNotifier struct {
	statuses []notify.Status
	messages []string
}

func (r *recordingNotifier) Notify(status notify.Status, title, message string) {
	r.statuses = append(r.statuses, status)
	r.messages = append(r.messages, message)
}

func happyCV() *models.CV {
	return &models.CV{Personal: models.Personal{Name: "Jane Roe", Title: "Engineer"}}
}

func newTestPipeline(t *testing.T, ex *fakeExtractor, an *fakeAnalyzer, gen *fakeGenerator) (*Pipeline, *storage.FileStore, *recordingNotifier) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	return New(ex, an, gen, store, notifier), store, notifier
}

func TestRunSuccess(t *testing.T) {
	p, store, notifier := newTestPipeline(t,
		&fakeExtractor{text: "raw cv text"},
		&fakeAnalyzer{cv: happyCV()},
		&fakeGenerator{html: "<html>site</html>"},
	)

	result := p.Run(context.Background(), "/tmp/resume.pdf")

	require.True(t, result.Success)
	assert.Equal(t, StageDone, result.Stage)
	assert.Empty(t, result.Error)
	assert.NotEmpty(t, result.RequestID)

	// All four artifacts exist and index matches archive
	assert.FileExists(t, result.Artifacts.RawTextPath)
	assert.FileExists(t, result.Artifacts.DataPath)
	assert.FileExists(t, result.Artifacts.IndexPath)
	assert.FileExists(t, result.Artifacts.ArchivePath)

	index, err := os.ReadFile(result.Artifacts.IndexPath)
	require.NoError(t, err)
	archive, err := os.ReadFile(result.Artifacts.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, index, archive)

	// Archive is named after the source document
	assert.Contains(t, filepath.Base(result.Artifacts.ArchivePath), "resume_portfolio_")

	require.Equal(t, []notify.Status{notify.StatusSuccess}, notifier.statuses)
	_ = store
}

func TestRunExtractionFailure(t *testing.T) {
	p, _, notifier := newTestPipeline(t,
		&fakeExtractor{err: utils.NewDocumentExtractionError("no such file")},
		&fakeAnalyzer{},
		&fakeGenerator{},
	)

	result := p.Run(context.Background(), "/tmp/missing.pdf")

	require.False(t, result.Success)
	assert.Equal(t, StageExtracting, result.Stage)
	assert.Equal(t, string(utils.KindDocumentExtraction), result.ErrorKind)
	assert.Empty(t, result.Artifacts.RawTextPath)
	require.Equal(t, []notify.Status{notify.StatusFailure}, notifier.statuses)
}

func TestRunGenerationFailureKeepsIntermediates(t *testing.T) {
	// Phase 2 dies but the extracted data survives for inspection
	p, store, notifier := newTestPipeline(t,
		&fakeExtractor{text: "raw"},
		&fakeAnalyzer{cv: happyCV()},
		&fakeGenerator{err: utils.NewServerUnavailableError("connection refused")},
	)

	result := p.Run(context.Background(), "/tmp/resume.pdf")

	require.False(t, result.Success)
	assert.Equal(t, StageGenerating, result.Stage)
	assert.Equal(t, string(utils.KindServerUnavailable), result.ErrorKind)

	// Intermediates were persisted before the failing stage
	assert.FileExists(t, result.Artifacts.RawTextPath)
	assert.FileExists(t, result.Artifacts.DataPath)
	assert.FileExists(t, filepath.Join(store.Dir(), "cv_extracted_data.json"))

	// No site artifacts
	assert.Empty(t, result.Artifacts.IndexPath)
	assert.NoFileExists(t, filepath.Join(store.Dir(), "index.html"))

	require.Equal(t, []notify.Status{notify.StatusFailure}, notifier.statuses)
	assert.Contains(t, notifier.messages[0], StageGenerating)
}

type failingRawTextStore struct {
	*storage.FileStore
}

func (f *failingRawTextStore) SaveRawText(text string) (string, error) {
	return "", utils.NewPersistenceError("disk full")
}

func TestRunRawTextPersistenceFailureAborts(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	p := New(
		&fakeExtractor{text: "raw"},
		&fakeAnalyzer{cv: happyCV()},
		&fakeGenerator{html: "<html></html>"},
		&failingRawTextStore{store},
		notifier,
	)

	result := p.Run(context.Background(), "/tmp/resume.pdf")

	require.False(t, result.Success)
	assert.Equal(t, StageExtracting, result.Stage)
	assert.Equal(t, string(utils.KindPersistence), result.ErrorKind)
	assert.Empty(t, result.Artifacts.RawTextPath)

	// Later stages never ran
	assert.NoFileExists(t, filepath.Join(store.Dir(), "cv_extracted_data.json"))
	assert.NoFileExists(t, filepath.Join(store.Dir(), "index.html"))
	require.Equal(t, []notify.Status{notify.StatusFailure}, notifier.statuses)
}

func TestRunEmptyRecordIsParseError(t *testing.T) {
	p, _, _ := newTestPipeline(t,
		&fakeExtractor{text: "raw"},
		&fakeAnalyzer{cv: &models.CV{}},
		&fakeGenerator{html: "<html></html>"},
	)

	result := p.Run(context.Background(), "/tmp/resume.pdf")

	require.False(t, result.Success)
	assert.Equal(t, StageAnalyzing, result.Stage)
	assert.Equal(t, string(utils.KindExtractionParse), result.ErrorKind)
}

func TestRunAnalysisFailureAfterRawText(t *testing.T) {
	p, store, _ := newTestPipeline(t,
		&fakeExtractor{text: "raw"},
		&fakeAnalyzer{err: utils.NewInferenceTimeoutError("deepseek-r1:7b", "deadline")},
		&fakeGenerator{},
	)

	result := p.Run(context.Background(), "/tmp/resume.pdf")

	require.False(t, result.Success)
	assert.Equal(t, StageAnalyzing, result.Stage)
	assert.Equal(t, string(utils.KindInferenceTimeout), result.ErrorKind)

	// The transcript from the stage that did complete is on disk
	assert.FileExists(t, filepath.Join(store.Dir(), "cv_raw_text.txt"))
	assert.NoFileExists(t, filepath.Join(store.Dir(), "cv_extracted_data.json"))
}

func TestSecondRunOverwritesIndexKeepsArchives(t *testing.T) {
	ex := &fakeExtractor{text: "raw"}
	an := &fakeAnalyzer{cv: happyCV()}
	gen := &fakeGenerator{html: "first site"}

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	p := New(ex, an, gen, store, &recordingNotifier{})

	first := p.Run(context.Background(), "/tmp/resume.pdf")
	require.True(t, first.Success)

	// Same-second runs still get distinct archive names via the numeric suffix
	gen.html = "second site"
	second := p.Run(context.Background(), "/tmp/resume.pdf")
	require.True(t, second.Success)

	assert.Equal(t, first.Artifacts.IndexPath, second.Artifacts.IndexPath)
	assert.NotEqual(t, first.Artifacts.ArchivePath, second.Artifacts.ArchivePath)

	index, err := os.ReadFile(second.Artifacts.IndexPath)
	require.NoError(t, err)
	assert.Equal(t, "second site", string(index))

	firstArchive, err := os.ReadFile(first.Artifacts.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, "first site", string(firstArchive))
}

func TestDocumentStem(t *testing.T) {
	assert.Equal(t, "resume", documentStem("/home/user/resume.pdf"))
	assert.Equal(t, "jane.roe.cv", documentStem("jane.roe.cv.pdf"))
	assert.Equal(t, "noext", documentStem("noext"))
}
