package torisat

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

//Options tunes a Solver. The zero value disables all output.
type Options struct {
	Verbosity bool `mapstructure:"verbosity"`
	Debug     bool `mapstructure:"debug"`
}

func DefaultOptions() Options {
	return Options{}
}

//LoadOptions reads a JSON options file. Unknown keys are rejected so typos
//do not silently fall back to defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrapf(err, "read options file %s", path)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return opts, errors.Wrapf(err, "parse options file %s", path)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return opts, errors.Wrap(err, "build options decoder")
	}
	if err := decoder.Decode(fields); err != nil {
		return opts, errors.Wrapf(err, "decode options file %s", path)
	}
	return opts, nil
}
