package termviz

import (
	"os"
	"strings"
)

// inTmux reports whether the process runs inside tmux.
func inTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TERM_PROGRAM") == "tmux"
}

// inScreen reports whether the process runs inside GNU screen.
func inScreen() bool {
	return os.Getenv("TERM_PROGRAM") == "screen" ||
		strings.HasPrefix(os.Getenv("TERM"), "screen")
}

// WrapTmuxPassthrough wraps a graphics escape sequence so tmux forwards it
// to the outer terminal: the sequence is embedded in a DCS tmux; envelope
// with every ESC doubled. Outside tmux/screen the input is returned
// unchanged.
func WrapTmuxPassthrough(seq string) string {
	if !inTmux() && !inScreen() {
		return seq
	}
	return "\x1bPtmux;\x1b" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
}
