package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var ErrNoFile = errors.New("an input file is required: pass -f <file>, or -f - for stdin")

func fileFlag(cmd *cobra.Command, file *string) {
	cmd.Flags().StringVarP(file, "file", "f", "", "YAML file with the record, - for stdin")
}

// readYAML decodes one record from path. Unknown keys are rejected so a
// misspelled field does not silently go missing.
func readYAML(cmd *cobra.Command, path string, out interface{}) error {
	var r io.Reader

	switch path {
	case "":
		return ErrNoFile
	case "-":
		r = cmd.InOrStdin()
	default:
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}
