package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theplant/animefilter/gormlibrary"
	"github.com/theplant/animefilter/legacy"
)

func newPresetsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage stored presets",
	}
	cmd.AddCommand(
		newPresetsListCommand(a),
		newPresetsImportCommand(a),
		newPresetsMigrateCommand(a),
	)
	return cmd
}

func newPresetsListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			presets, err := gormlibrary.NewPresetStore(db).List(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, presets)
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newPresetsImportCommand(a *app) *cobra.Command {
	var suppressErrors bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import legacy filters from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return err
			}
			var docs []map[string]any
			if err := decodeDocument(data, &docs); err != nil {
				return errors.Wrapf(err, "filters file %s", args[0])
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			store := gormlibrary.NewPresetStore(db)
			// Legacy ids are replaced by database ids; parents must come first in the file.
			ids := map[int]int{}
			for i, doc := range docs {
				filter, err := legacy.DecodeFilter(doc)
				if err != nil {
					return errors.Wrapf(err, "filter %d", i)
				}
				preset, err := legacy.ConvertFilter(*filter, suppressErrors)
				if err != nil {
					return errors.Wrapf(err, "filter %d", i)
				}
				legacyID := preset.ID
				preset.ID = 0
				if preset.ParentID != nil {
					parent, ok := ids[*preset.ParentID]
					if !ok {
						return errors.Errorf("filter %d: parent %d is not imported yet", i, *preset.ParentID)
					}
					preset.ParentID = &parent
				}
				if err := store.Save(cmd.Context(), preset); err != nil {
					return err
				}
				ids[legacyID] = preset.ID
				a.logger.Info("imported preset", "id", preset.ID, "name", preset.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&suppressErrors, "suppress-errors", false, "drop conditions that fail to convert")
	return cmd
}

func newPresetsMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			if err := gormlibrary.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			a.logger.Info("database migrated", "driver", a.cfg.Database.Driver)
			return nil
		},
	}
}
