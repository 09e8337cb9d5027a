package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/nkatturi/NotesAPI/internal/config"
)

// TesseractOCR runs the tesseract binary, the same engine the usual python
// OCR bindings wrap. "stdout" as the output name makes it print instead of
// writing a file.
type TesseractOCR struct {
	Binary string
}

func NewTesseractOCR() *TesseractOCR {
	return &TesseractOCR{Binary: config.TesseractBinary}
}

func (t *TesseractOCR) ImageToText(ctx context.Context, path string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, t.Binary, path, "stdout")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed on %s: %w (%s)", path, err, stderr.String())
	}
	return stdout.String(), nil
}
