package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
)

//go:embed default.yaml
var defaultYAML []byte

// DefaultFile is the config file looked up next to the binary's working
// directory when no -config flag is given.
const DefaultFile = "chasecam.yaml"

// read prefers the file on disk and falls back to the embedded default when
// it does not exist.
func read(path string) ([]byte, bool, error) {
	if path == "" {
		return defaultYAML, false, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultYAML, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
