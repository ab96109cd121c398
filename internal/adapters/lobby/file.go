package lobby

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/dkcron/internal/domain/sport"
)

// FileSource reads a saved lobby response from disk. The sport and live
// arguments are ignored; the file holds whatever was saved.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Contests returns the raw contest records in the file.
func (f *FileSource) Contests(ctx context.Context, _ sport.Sport, _ bool) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return DecodeContests(data)
}
