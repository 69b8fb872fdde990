package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot reports a source path that does not live under the source
// root. Discovery only hands us paths from inside the tree, so hitting this
// means the roots and the walker disagree; the job is failed rather than
// letting a ".." relative path escape the destination tree.
var ErrOutsideRoot = errors.New("source path is outside the source root")

// MapPath derives the destination path for src by mirroring its position
// relative to sourceRoot under destRoot. For Transcode jobs the extension
// is replaced with targetExt; Copy jobs keep the original name.
func MapPath(src, sourceRoot, destRoot string, kind Kind, targetExt string) (string, error) {
	rel, err := filepath.Rel(sourceRoot, src)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, src)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, src)
	}
	if kind == Transcode {
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + targetExt
	}
	return filepath.Join(destRoot, rel), nil
}

// NewJob builds the Job for one discovered file, resolving its destination.
func NewJob(src, sourceRoot, destRoot string, kind Kind, targetExt string) (Job, error) {
	dest, err := MapPath(src, sourceRoot, destRoot, kind, targetExt)
	if err != nil {
		return Job{}, err
	}
	return Job{Source: src, Dest: dest, Kind: kind}, nil
}
