package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load every document and validate the resulting types",
		Long: `Load every schema and OpenAPI document and register the types they
declare. Unknown references and circular configurations are reported as
errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			catalog, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}
			names := catalog.List()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d types (%s)\n", len(names), strings.Join(names, ", "))
			return nil
		},
	}
}
