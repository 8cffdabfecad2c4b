package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/kasuboski/seriez/pkg/logger"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "get details of a stored series",
	Long:  `get details of a stored series`,
}

var (
	streamSeason  int
	streamEpisode int
)

// getStreamsCmd lists the alternate streams of an episode
var getStreamsCmd = &cobra.Command{
	Use:   "streams <series name>",
	Short: "get the streams of an episode",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		m, _ := newSeriesManager(log)

		streams, err := m.Streams(ctx, strings.Join(args, " "), fmt.Sprint(streamSeason), fmt.Sprint(streamEpisode))
		if err != nil {
			exitNotFound(log, err)
		}

		rows := make([][]string, 0, len(streams))
		for i, s := range streams {
			rows = append(rows, []string{fmt.Sprint(i + 1), s.Name, formatSize(s.Size), s.Ident})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Name", "Size", "Ident"}, rows, []columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))
	},
}

func init() {
	getStreamsCmd.Flags().IntVarP(&streamSeason, "season", "s", 1, "season number")
	getStreamsCmd.Flags().IntVarP(&streamEpisode, "episode", "e", 1, "episode number")

	getCmd.AddCommand(getStreamsCmd)
	rootCmd.AddCommand(getCmd)
}
