package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"
)

// copyFile mirrors src to dest byte-for-byte and carries the source's
// modification time over so the freshness check is stable on the next run.
// Returns the number of bytes copied.
func copyFile(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return n, fmt.Errorf("copy %s: %w", src, err)
	}

	if err := os.Chtimes(dest, time.Now(), info.ModTime()); err != nil {
		return n, err
	}
	return n, nil
}
