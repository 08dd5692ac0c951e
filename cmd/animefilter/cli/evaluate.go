package cli

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theplant/animefilter"
	"github.com/theplant/animefilter/cursor"
	"github.com/theplant/animefilter/gormlibrary"
)

func newEvaluateCommand(a *app) *cobra.Command {
	var (
		presetRef string
		userID    int
		first     int
		after     string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a preset against the library",
		Long: `Evaluate a stored preset, given by id, or a preset JSON file against
the library and print the matching groups and series in order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}

			var preset *animefilter.Preset
			if id, convErr := strconv.Atoi(presetRef); convErr == nil {
				preset, err = gormlibrary.NewPresetStore(db).Get(cmd.Context(), id)
			} else {
				preset, err = readPreset(presetRef)
			}
			if err != nil {
				return err
			}

			req := &animefilter.EvaluateRequest{Preset: preset}
			if cmd.Flags().Changed("user") {
				req.UserID = &userID
			}
			result, err := a.evaluator(gormlibrary.New(db)).Evaluate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("first") && after == "" {
				return render(cmd.OutOrStdout(), format, result)
			}

			codec, err := a.cursorCodec()
			if err != nil {
				return err
			}
			page := &cursor.Request{}
			if cmd.Flags().Changed("first") {
				page.First = &first
			}
			if after != "" {
				page.After = &after
			}
			groups, err := cursor.Paginate(result.Groups, page, codec)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, groups)
		},
	}

	cmd.Flags().StringVar(&presetRef, "preset", "", "preset id or preset JSON file")
	cmd.Flags().IntVar(&userID, "user", 0, "user whose watch state and votes are used")
	cmd.Flags().IntVar(&first, "first", 0, "page size; prints a page of groups with cursors")
	cmd.Flags().StringVar(&after, "after", "", "cursor of the last group of the previous page")
	_ = cmd.MarkFlagRequired("preset")
	addOutputFlag(cmd)
	return cmd
}

func readPreset(path string) (*animefilter.Preset, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var p animefilter.Preset
	if err := p.UnmarshalJSON(data); err != nil {
		return nil, errors.Wrapf(err, "preset file %s", path)
	}
	return &p, nil
}
