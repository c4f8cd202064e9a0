package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hydrate/internal/prompt"
	"github.com/goliatone/go-hydrate/pkg/model"
	"github.com/goliatone/go-hydrate/pkg/schema"
)

func newFillCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill [type]",
		Short: "Hydrate an instance of a type and print it",
		Long: `Hydrate an instance of a type from JSON or YAML data and print the
resulting tree.

Examples:
  # Fill a Post from a file
  hydrate fill Post -s types.yaml --data post.json

  # Read data from stdin and print YAML
  cat post.yaml | hydrate fill Post -s types.yaml --data - -o yaml

  # Pick the type and edit the data interactively
  hydrate fill -s types.yaml --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runFill,
	}

	flags := cmd.Flags()
	flags.StringP("data", "d", "", "data file, - for stdin (JSON or YAML)")
	flags.StringP("output", "o", "json", "output format (json, yaml)")
	flags.Bool("sanitize", false, "strip HTML from every string in the data")
	flags.BoolP("interactive", "i", false, "prompt for missing type and data")
	flags.Bool("meta", false, "wrap the output with type, object id and update time")
	return cmd
}

func (a *app) runFill(cmd *cobra.Command, args []string) error {
	ctx, cancel := a.context(cmd)
	defer cancel()

	catalog, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}

	typeName := ""
	if len(args) > 0 {
		typeName = args[0]
	}
	if typeName == "" {
		if !a.settings.Interactive {
			return errors.New("fill: type name is required")
		}
		options := configuredTypes(catalog)
		idx, err := a.opts.Prompt.Select(ctx, prompt.SelectConfig{Message: "Type to fill", Options: options})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			return errors.New("fill: no type selected")
		}
		typeName = options[idx]
	}

	raw, err := a.readData(ctx, cmd, typeName)
	if err != nil {
		return err
	}
	data, err := decodeData(raw)
	if err != nil {
		return err
	}

	m, err := catalog.New(typeName, data)
	if err != nil {
		return err
	}

	out := model.Export(m)
	if a.settings.Meta {
		out = map[string]any{
			"type":           typeName,
			"objectId":       m.ObjectID(),
			"lastDataUpdate": m.LastDataUpdate().Format(time.RFC3339Nano),
			"data":           out,
		}
	}
	return writeValue(cmd.OutOrStdout(), a.settings.Output, out)
}

func (a *app) readData(ctx context.Context, cmd *cobra.Command, typeName string) ([]byte, error) {
	switch path := a.settings.Data; {
	case path == "-":
		return io.ReadAll(cmd.InOrStdin())
	case path != "":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fill: read data: %w", err)
		}
		return raw, nil
	case a.settings.Interactive:
		text, err := a.opts.Prompt.TextArea(ctx, prompt.TextAreaConfig{
			Message: fmt.Sprintf("Data for %s (JSON or YAML)", typeName),
		})
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	default:
		return nil, nil
	}
}

func configuredTypes(catalog *schema.Catalog) []string {
	var out []string
	for _, name := range catalog.List() {
		if t, err := catalog.Get(name); err == nil && t.Configured() {
			out = append(out, name)
		}
	}
	return out
}
