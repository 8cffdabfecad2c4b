package cmd

import (
	"github.com/kasuboski/seriez/pkg/logger"
	"github.com/kasuboski/seriez/server"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the catalog server",
	Long:  `start the catalog server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		manager, cfg := newSeriesManager(log)
		server := server.New(log, manager)
		log.Error(server.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
