// Package main boots the voice selection service and wires application
// dependencies.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/mealtone/nutrivoice/internal/asset"
	"github.com/mealtone/nutrivoice/internal/config"
	"github.com/mealtone/nutrivoice/internal/engine"
	"github.com/mealtone/nutrivoice/internal/letter"
	"github.com/mealtone/nutrivoice/internal/models"
	"github.com/mealtone/nutrivoice/internal/profile"
	"github.com/mealtone/nutrivoice/internal/repository"
	"github.com/mealtone/nutrivoice/internal/server"
	"github.com/mealtone/nutrivoice/internal/session"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	slog.Info("configuration loaded", "addr", cfg.Addr, "asset_base_url", cfg.AssetBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store *repository.Store
	if cfg.DatabaseURL != "" {
		var err error
		store, err = repository.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer store.Close()
	}

	profiles, err := loadProfiles(ctx, cfg, store)
	if err != nil {
		log.Fatalf("failed to load profiles: %v", err)
	}

	sessions, sweeper := newSessionStore(cfg)
	defer sessions.Close()

	resolver := asset.NewResolver(
		asset.NewHTTPChecker(cfg.AssetBaseURL, cfg.AssetCheckTimeout),
		asset.WithCheckTimeout(cfg.AssetCheckTimeout),
	)

	eng := engine.New(profiles,
		engine.WithResolver(resolver),
		engine.WithSessionStore(sessions),
		engine.WithCache(cfg.CacheSize),
	)

	serverOpts := []server.Option{}
	scheduler := cron.New()

	if store != nil {
		serverOpts = append(serverOpts, server.WithTurnRecorder(store.Turns))

		if writer := newLetterWriter(ctx, cfg, profiles, store); writer != nil {
			serverOpts = append(serverOpts, server.WithLetterWriter(writer))
			scheduleLetters(scheduler, cfg, profiles, writer)
		}
	}

	if sweeper != nil {
		if _, err := scheduler.AddFunc("*/10 * * * *", func() {
			if removed := sweeper.Sweep(time.Now()); removed > 0 {
				slog.Info("swept idle sessions", "removed", removed)
			}
		}); err != nil {
			log.Fatalf("failed to schedule session sweep: %v", err)
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	srv := server.New(cfg.Addr, eng, sessions, logger, serverOpts...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}

	slog.Info("service stopped")
}

// loadProfiles resolves the profile source: a JSON config file, the
// database, or the shipped builtins.
func loadProfiles(ctx context.Context, cfg config.Config, store *repository.Store) (*profile.StaticStore, error) {
	switch cfg.ProfileSource {
	case "file":
		loaded, err := profile.LoadFile(cfg.ProfileConfig)
		if err != nil {
			return nil, err
		}
		return profile.NewStaticStore(loaded...)
	case "db":
		if store == nil {
			return nil, fmt.Errorf("PROFILE_SOURCE=db requires DATABASE_URL")
		}
		loaded, err := store.Profiles.List(ctx)
		if err != nil {
			return nil, err
		}
		return profile.NewStaticStore(loaded...)
	default:
		return profile.NewStaticStore(profile.Builtin()...)
	}
}

// newSessionStore prefers Redis when configured; the in-memory store also
// returns a sweeper for the scheduled expiry pass.
func newSessionStore(cfg config.Config) (session.Store, *session.MemoryStore) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		slog.Info("using redis session store", "addr", cfg.RedisAddr)
		return session.NewRedisStore(client, cfg.SessionTTL), nil
	}
	memory := session.NewMemoryStore(cfg.SessionTTL)
	return memory, memory
}

func newLetterWriter(ctx context.Context, cfg config.Config, profiles *profile.StaticStore, store *repository.Store) *letter.Writer {
	var (
		generator models.Generator
		err       error
	)
	switch cfg.LetterProvider {
	case "gemini":
		if cfg.GoogleAPIKey == "" {
			slog.Warn("letters disabled: GOOGLE_API_KEY not set")
			return nil
		}
		generator, err = models.NewGeminiGenerator(ctx, cfg.GoogleAPIKey, cfg.LetterModel)
	default:
		if cfg.OpenAIAPIKey == "" {
			slog.Warn("letters disabled: OPENAI_API_KEY not set")
			return nil
		}
		generator, err = models.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.LetterModel)
	}
	if err != nil {
		log.Fatalf("failed to create letter generator: %v", err)
	}
	slog.Info("letter writer enabled", "provider", cfg.LetterProvider, "model", generator.Name())
	return letter.NewWriter(generator, profiles, store.Turns, store.Letters)
}

// scheduleLetters composes every character's letter for the finished day.
func scheduleLetters(scheduler *cron.Cron, cfg config.Config, profiles *profile.StaticStore, writer *letter.Writer) {
	spec := fmt.Sprintf("0 %d * * *", cfg.LetterHour)
	_, err := scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		day := time.Now()
		for _, characterID := range profiles.CharacterIDs() {
			if _, err := writer.Compose(ctx, characterID, day); err != nil {
				slog.Error("failed to compose nightly letter", "character_id", characterID, "error", err)
			}
		}
	})
	if err != nil {
		log.Fatalf("failed to schedule nightly letters: %v", err)
	}
}
