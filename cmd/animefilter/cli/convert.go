package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theplant/animefilter"
	"github.com/theplant/animefilter/legacy"
)

func newConvertCommand(a *app) *cobra.Command {
	var (
		conditionsPath string
		sortingSpec    string
		suppressErrors bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert legacy filter conditions to an expression tree",
		Long: `Read a YAML or JSON list of legacy conditions, convert them to an
expression tree and print the resulting preset document.

Condition types and operators may be given as numbers or names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			data, err := readFile(conditionsPath)
			if err != nil {
				return err
			}
			var docs []map[string]any
			if err := decodeDocument(data, &docs); err != nil {
				return errors.Wrapf(err, "conditions file %s", conditionsPath)
			}
			conditions, err := legacy.DecodeConditions(docs)
			if err != nil {
				return err
			}

			expr, err := legacy.ConvertConditions(conditions, suppressErrors)
			if err != nil {
				return err
			}
			preset := &animefilter.Preset{Expression: expr}
			if sortingSpec != "" {
				keys, err := legacy.ParseSorting(sortingSpec)
				if err != nil {
					return err
				}
				if preset.Sorting, err = legacy.ConvertSorting(keys); err != nil {
					return err
				}
			}
			a.logger.Debug("converted conditions", "conditions", len(conditions))
			return render(cmd.OutOrStdout(), format, preset)
		},
	}

	cmd.Flags().StringVar(&conditionsPath, "conditions", "", "YAML or JSON file with legacy conditions")
	cmd.Flags().StringVar(&sortingSpec, "sorting", "", `legacy sort string such as "5;1|11;2"`)
	cmd.Flags().BoolVar(&suppressErrors, "suppress-errors", false, "drop conditions that fail to convert")
	_ = cmd.MarkFlagRequired("conditions")
	addOutputFlag(cmd)
	return cmd
}
