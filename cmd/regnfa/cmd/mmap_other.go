//go:build !unix

package cmd

import (
	"fmt"
	"os"
)

func mapFile(path string) ([]byte, func() error, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if fi.IsDir() {
		return nil, nil, fmt.Errorf("%s: is a directory", path)
	}
	data, err := os.ReadFile(path)
	return data, noRelease, err
}
