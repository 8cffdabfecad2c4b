package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kasuboski/seriez/pkg/logger"
	"github.com/kasuboski/seriez/pkg/manager"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// listCmd lists stored catalogs
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list stored series",
	Long:  `list stored series`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		m, _ := newSeriesManager(log)

		entries := m.ListSeries(ctx)
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{displayName(e.DisplayName), e.SafeID})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Series", "ID"}, rows, nil))
	},
}

// listSeasonsCmd lists the seasons of a stored catalog
var listSeasonsCmd = &cobra.Command{
	Use:   "seasons <series name>",
	Short: "list the seasons of a series",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		m, _ := newSeriesManager(log)

		seasons, err := m.Seasons(ctx, strings.Join(args, " "))
		if err != nil {
			exitNotFound(log, err)
		}

		rows := make([][]string, 0, len(seasons))
		for _, s := range seasons {
			rows = append(rows, []string{manager.SeasonLabel(s)})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Season"}, rows, nil))
	},
}

var season int

// listEpisodesCmd lists the episodes of a season
var listEpisodesCmd = &cobra.Command{
	Use:   "episodes <series name>",
	Short: "list the episodes of a season",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		m, _ := newSeriesManager(log)

		episodes, err := m.Episodes(ctx, strings.Join(args, " "), fmt.Sprint(season))
		if err != nil {
			exitNotFound(log, err)
		}

		rows := make([][]string, 0, len(episodes))
		for _, e := range episodes {
			rows = append(rows, []string{
				manager.EpisodeLabel(e.Number, e.Episode.Name),
				formatSize(e.Episode.Size),
				fmt.Sprint(len(e.Episode.Streams)),
			})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Episode", "Size", "Streams"}, rows, []columnAlignment{alignLeft, alignRight, alignRight}))
	},
}

func exitNotFound(log *zap.SugaredLogger, err error) {
	if errors.Is(err, manager.ErrNotFound) {
		log.Fatalw("nothing stored, run search first", "error", err)
	}
	log.Fatal(err)
}

func init() {
	listEpisodesCmd.Flags().IntVarP(&season, "season", "s", 1, "season number")

	listCmd.AddCommand(listSeasonsCmd)
	listCmd.AddCommand(listEpisodesCmd)
	rootCmd.AddCommand(listCmd)
}
