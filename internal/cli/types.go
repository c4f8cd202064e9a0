package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hydrate/pkg/schema"
)

func newTypesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types [names...]",
		Short: "Describe the loaded types and their property rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			catalog, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = catalog.List()
			}
			for i, name := range names {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := describeType(cmd.OutOrStdout(), catalog, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func describeType(w io.Writer, catalog *schema.Catalog, name string) error {
	t, err := catalog.Get(name)
	if err != nil {
		return err
	}
	cfg := t.Configuration()
	if cfg == nil {
		fmt.Fprintf(w, "%s (unconfigured)\n", name)
		return nil
	}

	fmt.Fprintf(w, "%s dynamic=%t", name, cfg.Dynamic())
	if prefix := t.IDPrefix(); prefix != "" {
		fmt.Fprintf(w, " idPrefix=%q", prefix)
	}
	if def, ok := catalog.Definition(name); ok && def.Source != "" {
		fmt.Fprintf(w, " source=%s", def.Source)
	}
	fmt.Fprintln(w)

	for _, key := range cfg.Keys() {
		rule, _ := cfg.Get(key)
		fmt.Fprintf(w, "  %s: %s\n", key, rule)
	}
	return nil
}
