package plan

import "os"

// Fresh reports whether dest already reflects src: it exists and its
// modification time is at least as new as the source's. The answer is
// advisory and must be re-evaluated at dispatch time, not cached — sibling
// jobs create destination directories and files concurrently.
func Fresh(src, dest string) bool {
	di, err := os.Stat(dest)
	if err != nil {
		return false
	}
	si, err := os.Stat(src)
	if err != nil {
		return false
	}
	return !di.ModTime().Before(si.ModTime())
}
