package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/types"
)

// DocumentFileName is the stable filename of the report document.
// It is fully overwritten on each run.
const DocumentFileName = "latest_run.json"

//go:embed latest_run_schema.json
var documentSchema []byte

// Store persists run artifacts under a single reports directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DocumentPath returns the full path of the report document.
func (s *Store) DocumentPath() string {
	return filepath.Join(s.dir, DocumentFileName)
}

// WriteDocument writes the report document as indented JSON, replacing any
// previous document.
func (s *Store) WriteDocument(doc *types.ReportDocument) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &PersistenceError{Path: s.dir, Message: "failed to create reports directory", Cause: err}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &PersistenceError{Path: s.DocumentPath(), Message: "failed to marshal report document", Cause: err}
	}

	if err := os.WriteFile(s.DocumentPath(), data, 0o644); err != nil {
		return &PersistenceError{Path: s.DocumentPath(), Message: "failed to write report document", Cause: err}
	}
	return nil
}

// ReadDocument loads the report document back from disk, validating it
// against the document schema before unmarshaling.
func (s *Store) ReadDocument() (*types.ReportDocument, error) {
	path := s.DocumentPath()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputUnavailableError{Path: path, Message: "failed to read report document", Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, &InputUnavailableError{Path: path, Message: "report document is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		return nil, &InputUnavailableError{Path: path, Message: formatSchemaErrors(result)}
	}

	var doc types.ReportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &InputUnavailableError{Path: path, Message: "failed to parse report document", Cause: err}
	}
	return &doc, nil
}

// WriteNarrative writes the generated narrative as markdown. The filename
// incorporates the run id and a DDMMYYYY date stamp so repeated runs never
// overwrite one another; identical run id and date is an accepted overwrite.
func (s *Store) WriteNarrative(runID *int64, now time.Time, text string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &PersistenceError{Path: s.dir, Message: "failed to create reports directory", Cause: err}
	}

	id := "unknown"
	if runID != nil {
		id = strconv.FormatInt(*runID, 10)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("cto_report_run_%s_%s.md", id, now.Format("02012006")))

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", &PersistenceError{Path: path, Message: "failed to write narrative", Cause: err}
	}
	return path, nil
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	msg := "report document failed schema validation:"
	for _, fieldErr := range result.Errors() {
		msg += fmt.Sprintf(" %s: %s;", fieldErr.Field(), fieldErr.Description())
	}
	return msg
}
