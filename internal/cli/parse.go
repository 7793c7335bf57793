package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgraph/pkg/errors"
	pkgio "github.com/matzehuels/blockgraph/pkg/io"
	"github.com/matzehuels/blockgraph/pkg/project"
)

// Output encodings of the parse command.
const (
	parseToJSON = "json"
	parseToText = "text"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	from   string // input encoding; detected from the extension when empty
	to     string // output encoding: json or text
	output string // output file path (stdout if empty)
}

// parseCommand creates the parse command, which converts a project between
// encodings. Reading "-" takes the project from stdin.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{to: parseToJSON}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Convert a project between JSON, TOML and text notation",
		Long: `Parse a project and write it back in a normalized encoding.

Examples:
  blockgraph parse shop.txt                 # text notation to JSON on stdout
  blockgraph parse shop.toml --to text      # TOML to text notation
  cat shop.txt | blockgraph parse - --from text -o shop.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "input encoding: json, toml, text (default: by extension)")
	cmd.Flags().StringVar(&opts.to, "to", opts.to, "output encoding: json, text")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runParse(ctx context.Context, input string, opts *parseOpts) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateFormat(opts.to, []string{parseToJSON, parseToText}); err != nil {
		return err
	}

	p, err := readProject(input, opts.from)
	if err != nil {
		return err
	}
	logger.Debug("parsed project", "blocks", len(p.Blocks), "refs", len(p.Refs), "presets", len(p.Presets))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if opts.to == parseToText {
		err = pkgio.WriteText(p, out)
	} else {
		err = pkgio.WriteJSON(p, out)
	}
	if err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Wrote project to %s", opts.output)
	}
	return nil
}

// readProject reads input ("-" for stdin) in the given encoding, or the one
// implied by its extension when from is empty.
func readProject(input, from string) (*project.Project, error) {
	format := pkgio.Format(from)
	if from == "" {
		if input != "-" {
			return pkgio.Import(input)
		}
		format = pkgio.FormatText
	}

	var r io.Reader = os.Stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", input)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", input)
		}
		defer f.Close()
		r = f
	}
	return pkgio.Read(r, format)
}
