package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/rrtplan/logging"
)

// Read reads a scenario from the given file, substituting environment variables first.
func Read(filePath string, logger logging.Logger) (*Scenario, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a scenario from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Scenario, error) {
	scenario := Scenario{ConfigFilePath: originalPath}
	if err := json.NewDecoder(r).Decode(&scenario); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scenario from json")
	}
	if err := scenario.Validate("scenario"); err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debugw("read scenario",
			"path", originalPath,
			"algorithm", scenario.AlgorithmOrDefault(),
			"obstacles", len(scenario.Environment.Obstacles),
		)
	}
	return &scenario, nil
}

// Write writes the scenario as indented JSON.
func Write(w io.Writer, scenario *Scenario) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scenario)
}

// WriteFile writes the scenario to the given file.
func WriteFile(filePath string, scenario *Scenario) error {
	var buf bytes.Buffer
	if err := Write(&buf, scenario); err != nil {
		return err
	}
	return os.WriteFile(filePath, buf.Bytes(), 0o600)
}
