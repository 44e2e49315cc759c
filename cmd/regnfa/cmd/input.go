package cmd

import (
	"io"
)

// stdinName is the path that selects standard input.
const stdinName = "-"

// readInput returns the contents of path, or of stdin for "-". release must
// be called once the data is no longer used.
func readInput(path string, stdin io.Reader) (data []byte, release func() error, err error) {
	if path == stdinName {
		data, err = io.ReadAll(stdin)
		return data, noRelease, err
	}
	return mapFile(path)
}

func noRelease() error { return nil }
