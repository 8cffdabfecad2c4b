package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seriez",
	Short: "seriez cli",
	Long:  `seriez builds and browses episode catalogs from webshare search results`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

const (
	defaultBackoff = time.Second
)

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("SERIEZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("webshare.scheme", "https")
	viper.SetDefault("webshare.host", "webshare.cz")
	viper.SetDefault("webshare.token", "")
	viper.SetDefault("webshare.backoff", defaultBackoff)
	viper.SetDefault("webshare.maxRetries", 3)

	viper.SetDefault("storage.profileDir", defaultProfileDir())

	viper.SetDefault("search.category", "video")
	viper.SetDefault("search.sort", "recent")
	viper.SetDefault("search.limit", 100)
	viper.SetDefault("search.offset", 0)
	viper.SetDefault("search.maybeRemoved", true)
	viper.SetDefault("search.concurrency", 1)
	viper.SetDefault("search.dedupeQueries", false)

	viper.SetDefault("server.port", 8080)
}

func defaultProfileDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".seriez"
	}
	return filepath.Join(dir, "seriez")
}
