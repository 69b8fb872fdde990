package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks sourceDir and partitions every regular file by extension:
// files matching sourceExt (case-insensitive) are transcode candidates,
// everything else is passed through as a copy candidate. Directories and
// symlinks are excluded from both. Each list is sorted lexicographically
// for deterministic processing and reproducible dry-run output.
func Discover(sourceDir, sourceExt string) (transcode, passthrough []string, err error) {
	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), sourceExt) {
			transcode = append(transcode, path)
		} else {
			passthrough = append(passthrough, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(transcode)
	sort.Strings(passthrough)
	return transcode, passthrough, nil
}
