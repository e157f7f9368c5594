package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/pflag"

	"github.com/KirkDiggler/dex-api/data"
	"github.com/KirkDiggler/dex-api/internal/config"
	"github.com/KirkDiggler/dex-api/internal/engine"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/handlers/dex/v1alpha1"
	"github.com/KirkDiggler/dex-api/internal/orchestrators/battle"
	dexorchestrator "github.com/KirkDiggler/dex-api/internal/orchestrators/dex"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	"github.com/KirkDiggler/dex-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/dex-api/internal/redis"
	"github.com/KirkDiggler/dex-api/internal/repositories/speciesview"
	"github.com/KirkDiggler/dex-api/internal/rows"
	"github.com/KirkDiggler/dex-api/internal/store"
	"github.com/KirkDiggler/dex-api/internal/store/evolution"
	"github.com/KirkDiggler/dex-api/internal/store/index"
	"github.com/KirkDiggler/dex-api/internal/telemetry"
)

// app is the wired service graph shared by the server and the local CLI
type app struct {
	handler *v1alpha1.Handler
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func dataFS(dir string) fs.FS {
	if dir == "" {
		return data.FS()
	}
	return os.DirFS(dir)
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))
	a := &app{}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Warn("failed to flush traces", "error", err)
			}
		})
	}

	set, err := rows.LoadFS(dataFS(cfg.Data.Dir))
	if err != nil {
		a.close()
		return nil, err
	}

	st, err := store.New(&store.Config{
		Rows:   set,
		Assets: &store.Assets{BaseURL: cfg.Assets.BaseURL},
	})
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to build store")
	}
	slog.InfoContext(ctx, "loaded dataset",
		"species", len(st.AllSpecies()),
		"moves", len(st.AllMoves()),
		"items", len(st.AllItems()))

	clk := clock.New()
	viewRepo, err := newViewRepository(ctx, cfg, clk, a)
	if err != nil {
		a.close()
		return nil, err
	}

	var roller dice.Roller = dice.DefaultRoller
	if cfg.Engine.Seed != 0 {
		roller = engine.NewSeededRoller(cfg.Engine.Seed)
	}

	eng, err := engine.New(&engine.Config{Roller: roller})
	if err != nil {
		a.close()
		return nil, err
	}

	idx := index.New(st)

	dexService, err := dexorchestrator.NewOrchestrator(&dexorchestrator.Config{
		Store:     st,
		Index:     idx,
		Evolution: evolution.New(st),
		ViewRepo:  viewRepo,
		Clock:     clk,
		Roller:    roller,
		ViewTTL:   cfg.Redis.TTL,
	})
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to create dex orchestrator")
	}

	battleService, err := battle.NewOrchestrator(&battle.Config{
		Store:       st,
		Index:       idx,
		Engine:      eng,
		IDGenerator: idgen.NewUUID("turn"),
		Clock:       clk,
	})
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to create battle orchestrator")
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		DexService:    dexService,
		BattleService: battleService,
	})
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to create dex handler")
	}
	a.handler = handler

	return a, nil
}

// newViewRepository uses Redis when an endpoint is configured and an
// in-process cache otherwise
func newViewRepository(ctx context.Context, cfg *config.Config, clk clock.Clock, a *app) (speciesview.Repository, error) {
	if cfg.Redis.Endpoint == "" {
		slog.InfoContext(ctx, "species view cache is in memory")
		return speciesview.NewInMemory(clk, cfg.Redis.TTL), nil
	}

	client, err := redisclient.NewClient(cfg.Redis.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	if err := redisclient.Ping(ctx, client); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "species view cache is redis", "endpoint", cfg.Redis.Endpoint)

	return speciesview.NewRedisRepository(&speciesview.Config{
		Client: client,
		Clock:  clk,
		TTL:    cfg.Redis.TTL,
	})
}
