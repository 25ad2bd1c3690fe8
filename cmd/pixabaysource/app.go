package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/moddengine/pixabay-assetsource/internal/config"
	"github.com/moddengine/pixabay-assetsource/internal/logger"
	"github.com/moddengine/pixabay-assetsource/pixabay"
	"github.com/moddengine/pixabay-assetsource/store"
)

type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *store.Store
	source *pixabay.AssetSource
}

// newApp loads configuration and wires the asset source. The SQLite store
// always provides import tracking; it backs the record cache only with
// cache.driver=sqlite.
func newApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})

	st, err := store.Open(cfg.Database, cfg.Cache.TTL, log)
	if err != nil {
		return nil, err
	}

	var records pixabay.RecordStore = st
	if cfg.Cache.Driver == config.CacheDriverMemory {
		records = pixabay.NewMemoryRecordStore(cfg.Cache.Size, cfg.Cache.TTL)
	}

	source, err := pixabay.NewAssetSourceFromOptions(cfg.Source.Identifier, cfg.SourceOptions(), pixabay.Options{
		RecordStore:    records,
		ImportedAssets: st,
		Publisher:      pixabay.StaticPublisher{BaseURL: cfg.Server.PublicBase},
		Logger:         log,
		ClientOptions: []pixabay.ClientOption{
			pixabay.WithBaseURL(cfg.Pixabay.BaseURL),
			pixabay.WithResultCache(cfg.Cache.Size, cfg.Cache.TTL),
		},
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("create asset source: %w", err)
	}

	return &app{cfg: cfg, log: log, store: st, source: source}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
