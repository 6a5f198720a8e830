package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/audio"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	"github.com/johnquangdev/meeting-notes/pkg/metrics"
	"github.com/johnquangdev/meeting-notes/pkg/push"
)

// App holds the adapters built once at startup
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Recorder
	Service meeting.Service

	closers []func() error
}

// New builds every adapter selected by cfg and the meeting service on top of them
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	meetings, err := a.newMeetingRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	locker, err := a.newLocker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	deps := meeting.Dependencies{
		Fetcher:     audio.NewFetcher(cfg.Pipeline.AudioFetchTimeout, cfg.Pipeline.AudioMaxBytes),
		Transcriber: NewTranscriber(cfg),
		Summarizer:  NewSummarizer(cfg),
		Meetings:    meetings,
		Notifier:    push.NewExpoClient(cfg.Push.ExpoURL, cfg.Push.AccessToken, cfg.Push.Timeout),
		Locker:      locker,
		Metrics:     a.Metrics,
	}

	if cfg.Storage.ArchiveEnabled {
		archiver, err := storage.NewMinIOArchiver(ctx, &cfg.Storage)
		if err != nil {
			// Archiving is best-effort; the pipeline runs without it.
			logger.Warn("artifact archive disabled", zap.Error(err))
		} else {
			deps.Archiver = archiver
			logger.Info("artifact archive enabled",
				zap.String("bucket", cfg.Storage.BucketName),
				zap.String("prefix", cfg.Storage.Prefix),
			)
		}
	}

	a.Service = meeting.NewService(deps, logger)

	logger.Info("pipeline configured",
		zap.String("transcription", deps.Transcriber.Name()),
		zap.String("summary", deps.Summarizer.Name()),
		zap.String("record_store", cfg.Database.RecordStore),
		zap.String("lock", cfg.Lock.Backend),
	)
	return a, nil
}

// Close releases connections opened by New, in reverse order
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *App) newMeetingRepository(ctx context.Context) (repositories.MeetingRepository, error) {
	cfg := a.Config
	if cfg.Database.RecordStore != config.RecordStorePostgres {
		return repository.NewSupabaseMeetingRepository(&cfg.Supabase), nil
	}

	db, err := database.NewPostgresDB(ctx, cfg, a.Logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error { return database.CloseDB(db) })

	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("DB_AUTO_MIGRATE is enabled in production; run meetingctl migrate up instead")
		}
		n, err := database.Migrate(db, migrate.Up, 0)
		if err != nil {
			return nil, err
		}
		a.Logger.Info("migrations applied", zap.Int("count", n))
	}

	return repository.NewMeetingRepository(db), nil
}

func (a *App) newLocker(ctx context.Context) (cache.Locker, error) {
	var client redis.Cmdable
	if a.Config.Lock.Backend == config.LockRedis {
		rdb, err := cache.NewRedisClient(ctx, a.Config, a.Logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		client = rdb
	}
	return cache.NewLocker(&a.Config.Lock, client)
}

// NewTranscriber returns the transcription backend selected by TRANSCRIPTION_PROVIDER
func NewTranscriber(cfg *config.Config) ai.Transcriber {
	if cfg.Pipeline.TranscriptionProvider == config.ProviderAssemblyAI {
		return ai.NewAssemblyAITranscriber(&cfg.Assembly, "")
	}
	return ai.NewWhisperTranscriber(&cfg.OpenAI)
}

// NewSummarizer returns the summary backend selected by SUMMARY_PROVIDER
func NewSummarizer(cfg *config.Config) ai.Summarizer {
	if cfg.Pipeline.SummaryProvider == config.ProviderGemini {
		return ai.NewGeminiSummarizer(cfg.SummaryAPIKey(), cfg.Pipeline.SummaryModel)
	}
	return ai.NewChatSummarizerFromConfig(cfg)
}
