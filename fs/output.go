// Package fs writes the generated document to the local filesystem.
package fs

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/sitepdf"
)

// Ensure FileOutput implements sitepdf.Output at compile time.
var _ sitepdf.Output = (*FileOutput)(nil)

// FileOutput implements sitepdf.Output with atomic update semantics.
// The document is written to a temporary file next to the destination and
// renamed onto it on Commit, so a failed run never leaves a partial file.
type FileOutput struct {
	path string

	mu   sync.Mutex
	temp string
}

// NewFileOutput creates a FileOutput for path.
func NewFileOutput(path string) *FileOutput {
	return &FileOutput{path: path}
}

// Path returns the destination path.
func (o *FileOutput) Path() string {
	return o.path
}

// Create opens the temporary file. Parent directories are created as needed.
func (o *FileOutput) Create() (io.WriteCloser, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.temp != "" {
		return nil, sitepdf.Errorf(sitepdf.EINTERNAL, "output %s already open", o.path)
	}

	dir := filepath.Dir(o.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(o.path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	o.temp = f.Name()
	return f, nil
}

// Commit moves the temporary file onto the destination, replacing any
// existing file.
func (o *FileOutput) Commit() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.temp == "" {
		return sitepdf.Errorf(sitepdf.EINTERNAL, "output %s not created", o.path)
	}
	if err := os.Chmod(o.temp, 0644); err != nil {
		return err
	}
	if err := os.Rename(o.temp, o.path); err != nil {
		return err
	}
	o.temp = ""
	return nil
}

// Abort removes the temporary file. The destination is left untouched.
func (o *FileOutput) Abort() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.temp == "" {
		return nil
	}
	err := os.Remove(o.temp)
	o.temp = ""
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
