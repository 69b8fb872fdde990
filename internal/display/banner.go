package display

import (
	"fmt"
	"os"

	"github.com/opusmill/opusmill/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  ___  _ __  _   _ ___ _ __ ___ (_) | |
 / _ \| '_ \| | | / __| '_ ` + "`" + ` _ \| | | |
| (_) | |_) | |_| \__ \ | | | | | | | |
 \___/| .__/ \__,_|___/_| |_| |_|_|_|_|
      |_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
