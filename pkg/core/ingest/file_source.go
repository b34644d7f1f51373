package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FileSource reads saved company pages from <dir>/<ID>.html.
type FileSource struct {
	dir string
}

// NewFileSource creates a source over dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Path returns the file a company page is read from.
func (f *FileSource) Path(companyID string) string {
	return filepath.Join(f.dir, companyID+".html")
}

// FetchDocument reads the saved page. A missing file is reported like an
// HTTP 404 so callers see the same failure either way.
func (f *FileSource) FetchDocument(ctx context.Context, companyID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{CompanyID: companyID, Err: err}
	}
	if companyID == "" || strings.ContainsAny(companyID, `/\`) || strings.Contains(companyID, "..") {
		return "", &FetchError{CompanyID: companyID, StatusCode: http.StatusBadRequest}
	}

	data, err := os.ReadFile(f.Path(companyID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &FetchError{CompanyID: companyID, StatusCode: http.StatusNotFound}
		}
		return "", &FetchError{CompanyID: companyID, Err: fmt.Errorf("read page: %w", err)}
	}
	return string(data), nil
}
