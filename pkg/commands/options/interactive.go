package options

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// InputOptions collects draft text from arguments, a file or piped stdin.
type InputOptions struct {
	File  string
	Stdin io.Reader
}

func AddInputArgs(cmd *cobra.Command, o *InputOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		`Read text from a file, "-" reads stdin.`)
}

var ErrNoInput = errors.New("no input: pass text as arguments, --file, or pipe it on stdin")

// Read returns the text to work on. Arguments are joined with newlines so
// each argument becomes one line.
func (o *InputOptions) Read(args []string) (string, error) {
	if o.File != "" && o.File != "-" {
		b, err := os.ReadFile(o.File)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if len(args) > 0 && o.File == "" {
		return strings.Join(args, "\n"), nil
	}
	in := o.Stdin
	if in == nil {
		if o.File != "-" && isatty.IsTerminal(os.Stdin.Fd()) {
			return "", ErrNoInput
		}
		in = os.Stdin
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
