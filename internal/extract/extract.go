package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lu4p/cat"
	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

// OCRRunner is the opaque image-to-text capability. The default
// implementation shells out to tesseract; tests swap in a fake.
type OCRRunner interface {
	ImageToText(ctx context.Context, path string) (string, error)
}

type Extractor struct {
	root   string
	ocr    OCRRunner
	logger *logger_i.Logger
}

func NewExtractor(root string, ocr OCRRunner) *Extractor {
	return &Extractor{
		root:   root,
		ocr:    ocr,
		logger: logger_i.NewLogger("Extraction "),
	}
}

// ExtractSubject walks a subject folder and turns every supported file into
// a .txt sibling. One bad file never takes down the rest of the folder: it
// is logged, skipped, and simply absent from the report.
func (e *Extractor) ExtractSubject(ctx context.Context, subject string) (commonModels.ExtractReport, error) {
	log := e.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "subject", subject)

	report := commonModels.ExtractReport{ExtractedTexts: make(map[string]string)}

	folder := filepath.Join(e.root, subject)
	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		return report, fmt.Errorf("subject folder %q: %w", subject, err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		fname := entry.Name()
		kind := classifyFile(fname)
		if kind == commonModels.UNSUPPORTED || kind == commonModels.TXT {
			// .txt files are already in ingestible form
			continue
		}

		text, err := e.extractFile(ctx, filepath.Join(folder, fname), kind)
		if err != nil {
			log.Error("Error extracting file, skipping", "file", fname, "error", err)
			continue
		}

		txtName := strings.TrimSuffix(fname, filepath.Ext(fname)) + ".txt"
		if err := os.WriteFile(filepath.Join(folder, txtName), []byte(text), 0o644); err != nil {
			log.Error("Error persisting extracted text, skipping", "file", fname, "error", err)
			continue
		}

		report.ExtractedTexts[fname] = text
		report.ProcessedFiles = append(report.ProcessedFiles, commonModels.ProcessedFile{
			OriginalFile: fname,
			TextFile:     txtName,
			TextLength:   len(text),
		})
		log.Debug("Extracted text", "file", fname, "characters", len(text))
	}

	return report, nil
}

func classifyFile(fname string) commonModels.DocType {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tiff":
		return commonModels.IMAGE
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	case ".txt":
		return commonModels.TXT
	default:
		return commonModels.UNSUPPORTED
	}
}

func (e *Extractor) extractFile(ctx context.Context, path string, kind commonModels.DocType) (string, error) {
	switch kind {
	case commonModels.IMAGE:
		return e.ocr.ImageToText(ctx, path)
	case commonModels.PDF:
		return extractPDF(path, e.logger)
	case commonModels.DOCX:
		text, err := cat.File(path)
		if err != nil {
			return "", fmt.Errorf("failed to extract document: %w", err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", kind)
	}
}
