package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sharetube/livepage/internal/controller"
	connectionrepo "github.com/sharetube/livepage/internal/repository/connection/inmemory"
	"github.com/sharetube/livepage/internal/repository/content/microcms"
	"github.com/sharetube/livepage/internal/repository/snapshot"
	snapshotinmemory "github.com/sharetube/livepage/internal/repository/snapshot/inmemory"
	snapshotredis "github.com/sharetube/livepage/internal/repository/snapshot/redis"
	"github.com/sharetube/livepage/internal/service/live"
	"github.com/sharetube/livepage/pkg/ctxlogger"
	"github.com/sharetube/livepage/pkg/redisclient"
)

type AppConfig struct {
	ServerDomain  string `json:"server_domain"`
	APIKey        string `json:"-"`
	Endpoint      string `json:"end_point"`
	ArchiveMode   bool   `json:"archive_mode"`
	APITime       int    `json:"api_time"`
	YoutubeWidth  int    `json:"youtube_width"`
	YoutubeHeight int    `json:"youtube_height"`
	CMSBaseURL    string `json:"cms_base_url"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	LogLevel      string `json:"log_level"`
	RedisPort     int    `json:"redis_port"`
	RedisHost     string `json:"redis_host"`
	RedisPassword string `json:"-"`
	SnapshotTTL   int    `json:"snapshot_ttl"`
}

// Validate checks the numeric settings. CMS credentials are checked per
// poller so the page can still be served and report the problem.
func (cfg *AppConfig) Validate() error {
	if cfg.APITime < 1 {
		return fmt.Errorf("api time must be greater than 0")
	}
	if cfg.YoutubeWidth < 1 {
		return fmt.Errorf("youtube width must be greater than 0")
	}
	if cfg.YoutubeHeight < 1 {
		return fmt.Errorf("youtube height must be greater than 0")
	}
	if cfg.Port < 1 {
		return fmt.Errorf("port must be greater than 0")
	}
	if cfg.SnapshotTTL < 1 {
		return fmt.Errorf("snapshot ttl must be greater than 0")
	}
	return nil
}

type iSnapshotRepo interface {
	Get(ctx context.Context, key string) (snapshot.Snapshot, error)
	Set(ctx context.Context, key string, s snapshot.Snapshot) error
	Delete(ctx context.Context, key string) error
}

type application struct {
	handler     http.Handler
	liveService *live.Service
	closers     []func() error
}

func newLogger(level string) (*slog.Logger, error) {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, err
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	return slog.New(&h), nil
}

func newApplication(ctx context.Context, cfg *AppConfig, logger *slog.Logger) (*application, error) {
	a := &application{}
	snapshotTTL := time.Duration(cfg.SnapshotTTL) * time.Second

	var snapshotRepo iSnapshotRepo
	if cfg.RedisHost != "" {
		rc, err := redisclient.NewRedisClient(ctx, &redisclient.Config{
			Port:     cfg.RedisPort,
			Host:     cfg.RedisHost,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		a.closers = append(a.closers, rc.Close)
		snapshotRepo = snapshotredis.NewRepo(rc, snapshotTTL, logger)
	} else {
		logger.InfoContext(ctx, "redis host is not set, keeping snapshots in memory")
		snapshotRepo = snapshotinmemory.NewRepo(snapshotTTL, logger)
	}

	pollInterval := time.Duration(cfg.APITime) * time.Millisecond
	contentClient := microcms.NewClient(&microcms.Config{
		ServiceDomain: cfg.ServerDomain,
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.CMSBaseURL,
		Timeout:       pollInterval,
	})

	a.liveService = live.NewService(&live.Settings{
		ServerDomain: cfg.ServerDomain,
		APIKey:       cfg.APIKey,
		Endpoint:     cfg.Endpoint,
		ArchiveMode:  cfg.ArchiveMode,
		PollInterval: pollInterval,
		PlayerWidth:  cfg.YoutubeWidth,
		PlayerHeight: cfg.YoutubeHeight,
	}, contentClient, snapshotRepo, connectionrepo.NewRepo(logger), logger)

	a.handler = controller.NewController(a.liveService, logger).GetMux()

	return a, nil
}

// Close stops every poller, disconnects viewers and releases the stores.
func (a *application) Close(ctx context.Context) error {
	errs := []error{a.liveService.Shutdown(ctx)}
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}

	return errors.Join(errs...)
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	a, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: a.handler}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		// Viewer sockets are hijacked and ignored by server.Shutdown, so the
		// service closes them first.
		if err := a.Close(shutdownCtx); err != nil {
			logger.ErrorContext(shutdownCtx, "failed to close application", "error", err)
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Join(err, a.Close(ctx))
	}

	<-serverCtx.Done()

	return nil
}
