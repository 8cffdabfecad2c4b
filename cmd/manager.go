package cmd

import (
	"github.com/kasuboski/seriez/config"
	"github.com/kasuboski/seriez/pkg/catalog"
	mhttp "github.com/kasuboski/seriez/pkg/http"
	mio "github.com/kasuboski/seriez/pkg/io"
	"github.com/kasuboski/seriez/pkg/manager"
	"github.com/kasuboski/seriez/pkg/webshare"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newSeriesManager wires a SeriesManager from the loaded configuration and exits on failure
func newSeriesManager(log *zap.SugaredLogger) (manager.SeriesManager, config.Config) {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		log.Fatal("failed to read configurations", zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	httpClient := mhttp.NewRateLimitedClient(
		mhttp.WithBaseBackoff(cfg.Webshare.BaseBackoff),
		mhttp.WithMaxRetries(cfg.Webshare.MaxRetries),
	)

	searcher, err := webshare.New(cfg.Webshare.URL(), webshare.WithHTTPClient(httpClient))
	if err != nil {
		log.Fatal("failed to create webshare client", zap.Error(err))
	}

	store := catalog.NewStore(&mio.OSFileSystem{}, cfg.Storage.ProfileDir)
	return manager.New(searcher, store, cfg.Search, cfg.Webshare.Token), cfg
}
