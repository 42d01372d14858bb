package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/catalog"
)

func newRolesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the job roles résumés can be scored against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, key := range a.analyzer.Catalog().RoleKeys() {
				marker := ""
				if key == analysis.DefaultRole {
					marker = "(default)"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", key, catalog.HumanizeRole(key), marker)
			}
			return w.Flush()
		},
	}
}
