package transport

import (
	"bufio"
	"io"
)

// DrainStderr reads a child process's stderr line by line until it closes,
// handing each line to sink. It is meant to run in its own goroutine for
// the lifetime of the child process, the same "read in a loop until error"
// shape used for the primary stdio stream.
func DrainStderr(stderr io.Reader, sink func(line string)) {
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sink(scanner.Text())
	}
}
