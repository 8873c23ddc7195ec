package dashboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PdfExporter converts a workbook to PDF. Export is best-effort: callers
// log a failure and continue.
type PdfExporter interface {
	Export(ctx context.Context, excelPath, pdfPath string) error
}

// SofficeExporter exports via a headless LibreOffice invocation.
type SofficeExporter struct {
	// Bin is the soffice binary; "soffice" when empty.
	Bin string
}

// Export runs soffice --headless --convert-to pdf and moves the result to
// pdfPath if the two differ.
func (e SofficeExporter) Export(ctx context.Context, excelPath, pdfPath string) error {
	bin := e.Bin
	if bin == "" {
		bin = "soffice"
	}
	abs, err := filepath.Abs(excelPath)
	if err != nil {
		return err
	}
	outDir := filepath.Dir(abs)

	cmd := exec.CommandContext(ctx, bin, "--headless", "--convert-to", "pdf", "--outdir", outDir, abs)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("soffice convert: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	produced := strings.TrimSuffix(abs, filepath.Ext(abs)) + ".pdf"
	absPdf, err := filepath.Abs(pdfPath)
	if err != nil {
		return err
	}
	if produced == absPdf {
		return nil
	}
	return os.Rename(produced, absPdf)
}
