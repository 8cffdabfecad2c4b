package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/kasuboski/seriez/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// searchCmd searches webshare for a series and replaces its stored catalog
var searchCmd = &cobra.Command{
	Use:   "search <series name>",
	Short: "search for a series and store its catalog",
	Long:  `search for a series and store its catalog`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		m, _ := newSeriesManager(log)

		name := strings.Join(args, " ")
		series, err := m.Search(ctx, name)
		if err != nil {
			log.Fatal("failed to search series", zap.Error(err))
		}

		rows := make([][]string, 0, len(series.Seasons))
		for _, key := range series.Seasons.Keys() {
			rows = append(rows, []string{key, fmt.Sprint(len(series.Seasons[key]))})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d episodes (updated %s)\n", series.Name, series.EpisodeCount(), series.LastUpdated)
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Season", "Episodes"}, rows, []columnAlignment{alignRight, alignRight}))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
