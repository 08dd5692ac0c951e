package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/theplant/animefilter/expression"
)

func newCatalogCommand(a *app) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the expression node kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			infos := expression.Catalog()
			if group != "" {
				infos = lo.Filter(infos, func(info expression.Info, _ int) bool {
					return string(info.Group) == group
				})
			}
			return render(cmd.OutOrStdout(), format, infos)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "only list one group (Logic, Info, Selector, Function)")
	addOutputFlag(cmd)
	return cmd
}
