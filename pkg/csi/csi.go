/*
Package csi sends optional control-sequence queries to the controlling
terminal. Nothing in the rendering core depends on these: environment-based
detection never performs a device round-trip, and every query here degrades
to a "not available" answer when stdin is not an interactive terminal.
*/
package csi

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// QueryTimeout bounds how long a query waits for the terminal's response.
const QueryTimeout = 100 * time.Millisecond

// PrimaryDeviceAttributes sends a DA1 query (CSI c) and returns the
// semicolon-separated attribute parameters. Sixel-capable terminals report
// attribute 4. ok is false when no terminal is attached or the response
// timed out.
func PrimaryDeviceAttributes() (attrs []string, ok bool) {
	resp, ok := roundTrip("\x1b[c")
	if !ok {
		return nil, false
	}
	// Response shape: ESC [ ? a1 ; a2 ; ... c
	start := strings.Index(resp, "[?")
	end := strings.IndexByte(resp, 'c')
	if start < 0 || end <= start {
		return nil, false
	}
	return strings.Split(resp[start+2:end], ";"), true
}

// CellSize asks for the character cell size in pixels (CSI 16 t).
func CellSize() (width, height int, ok bool) {
	resp, ok := roundTrip("\x1b[16t")
	if !ok {
		return 0, 0, false
	}
	// Response shape: ESC [ 6 ; height ; width t
	if !strings.Contains(resp, "[6;") {
		return 0, 0, false
	}
	parts := strings.Split(resp[strings.Index(resp, "[6;")+3:], ";")
	if len(parts) < 2 {
		return 0, 0, false
	}
	fmt.Sscanf(parts[0], "%d", &height)
	fmt.Sscanf(parts[1], "%dt", &width)
	return width, height, width > 0 && height > 0
}

// TextAreaSize asks for the text area size in pixels (CSI 14 t).
func TextAreaSize() (width, height int, ok bool) {
	resp, ok := roundTrip("\x1b[14t")
	if !ok {
		return 0, 0, false
	}
	// Response shape: ESC [ 4 ; height ; width t
	if !strings.Contains(resp, "[4;") {
		return 0, 0, false
	}
	parts := strings.Split(resp[strings.Index(resp, "[4;")+3:], ";")
	if len(parts) < 2 {
		return 0, 0, false
	}
	fmt.Sscanf(parts[0], "%d", &height)
	fmt.Sscanf(parts[1], "%dt", &width)
	return width, height, width > 0 && height > 0
}

// roundTrip writes a query to the controlling terminal in raw mode and
// reads one response, bounded by QueryTimeout.
func roundTrip(query string) (string, bool) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return "", false
	}
	defer tty.Close()

	if !term.IsTerminal(int(tty.Fd())) {
		return "", false
	}
	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return "", false
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString(query); err != nil {
		return "", false
	}

	respChan := make(chan string, 1)
	go func() {
		buf := make([]byte, 256)
		n, err := tty.Read(buf)
		if err != nil || n == 0 {
			respChan <- ""
			return
		}
		respChan <- string(buf[:n])
	}()

	select {
	case resp := <-respChan:
		return resp, resp != ""
	case <-time.After(QueryTimeout):
		return "", false
	}
}
