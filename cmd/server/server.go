package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/coc-api/internal/config"
	"github.com/KirkDiggler/coc-api/internal/engine"
	"github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/coc-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/character"
	diceorchestrator "github.com/KirkDiggler/coc-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/export"
	imageorchestrator "github.com/KirkDiggler/coc-api/internal/orchestrators/image"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/version"
	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
	"github.com/KirkDiggler/coc-api/internal/repositories/dicesetting"
	equipmentrepo "github.com/KirkDiggler/coc-api/internal/repositories/equipment"
	imagerepo "github.com/KirkDiggler/coc-api/internal/repositories/image"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	skillrepo "github.com/KirkDiggler/coc-api/internal/repositories/skill"
)

var (
	grpcPort  int
	redisAddr string
	logFormat string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the coc-api gRPC server. Settings are read from COC_* environment
variables; --port and --redis-addr override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides COC_GRPC_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address (overrides COC_REDIS_ADDR)")
	serverCmd.Flags().StringVar(&logFormat, "log-format", "json", "Log format: json or text")
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := setupLogging(logFormat); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.RedisAddr = redisAddr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	redisClient, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}()
	if err := redisclient.Ping(ctx, redisClient, 5*time.Second); err != nil {
		return fmt.Errorf("redis at %s is unreachable: %w", cfg.RedisAddr, err)
	}

	handler, err := buildHandler(cfg, redisClient)
	if err != nil {
		return fmt.Errorf("failed to build sheet handler: %w", err)
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(maxRecvMsgSize(cfg.MaxImageBytes)),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterSheetServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting",
			"addr", cfg.GRPCAddr(),
			"redis", cfg.RedisAddr,
			"default_edition", cfg.DefaultEdition,
			"vtt_sync_enabled", cfg.VTTSyncEnabled)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// recvHeadroom covers the request fields around an encoded image
const recvHeadroom = 1 << 20

// maxRecvMsgSize lets the largest accepted image through as base64 so the
// image quota, not the transport, rejects oversized uploads
func maxRecvMsgSize(maxImageBytes int64) int {
	encoded := (maxImageBytes + 2) / 3 * 4
	return int(encoded) + recvHeadroom
}

// buildHandler wires repositories, orchestrators and the handler onto one
// redis client
func buildHandler(cfg *config.Config, client redisclient.Client) (*v1alpha1.Handler, error) {
	clk := clock.New()

	sheets, err := sheetrepo.NewRedis(&sheetrepo.RedisConfig{Client: client, Clock: clk})
	if err != nil {
		return nil, errors.Wrap(err, "sheet repository")
	}
	skills, err := skillrepo.NewRedis(&skillrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, errors.Wrap(err, "skill repository")
	}
	equipment, err := equipmentrepo.NewRedis(&equipmentrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, errors.Wrap(err, "equipment repository")
	}
	images, err := imagerepo.NewRedis(&imagerepo.RedisConfig{Client: client})
	if err != nil {
		return nil, errors.Wrap(err, "image repository")
	}
	diceSettings, err := dicesetting.NewRedis(&dicesetting.RedisConfig{Client: client, Clock: clk})
	if err != nil {
		return nil, errors.Wrap(err, "dice setting repository")
	}
	diceSessions, err := dicesession.NewRedisRepository(&dicesession.Config{Client: client, Clock: clk})
	if err != nil {
		return nil, errors.Wrap(err, "dice session repository")
	}

	eng, err := engine.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "rules engine")
	}
	publisher, err := rpgtoolkit.NewPublisher(&rpgtoolkit.PublisherConfig{EventBus: events.NewBus()})
	if err != nil {
		return nil, errors.Wrap(err, "event publisher")
	}

	characters, err := character.New(&character.Config{
		SheetRepo:      sheets,
		SkillRepo:      skills,
		EquipmentRepo:  equipment,
		ImageRepo:      images,
		Engine:         eng,
		Clock:          clk,
		Publisher:      publisher,
		DefaultEdition: cfg.DefaultEdition,
	})
	if err != nil {
		return nil, errors.Wrap(err, "character orchestrator")
	}

	versions, err := version.New(&version.Config{
		SheetRepo: sheets,
		SkillRepo: skills,
		ImageRepo: images,
		Engine:    eng,
		Publisher: publisher,
	})
	if err != nil {
		return nil, errors.Wrap(err, "version orchestrator")
	}

	imageService, err := imageorchestrator.New(&imageorchestrator.Config{
		SheetRepo: sheets,
		ImageRepo: images,
		Clock:     clk,
		Publisher: publisher,
		Limits: imageorchestrator.Limits{
			MaxImagesPerSheet:     cfg.MaxImagesPerSheet,
			MaxImageBytes:         cfg.MaxImageBytes,
			MaxTotalBytesPerSheet: cfg.MaxTotalImageBytes,
			AllowedMediaTypes:     cfg.MediaTypes(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "image orchestrator")
	}

	diceService, err := diceorchestrator.NewOrchestrator(&diceorchestrator.Config{
		SettingRepo:   diceSettings,
		SessionRepo:   diceSessions,
		Roller:        dice.DefaultRoller,
		IDGenerator:   idgen.NewUUID(idgen.PrefixDiceSetting),
		Publisher:     publisher,
		DefaultPreset: cfg.DefaultDicePreset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "dice orchestrator")
	}

	exports, err := export.New(&export.Config{
		SheetRepo:       sheets,
		SkillRepo:       skills,
		Characters:      characters,
		Clock:           clk,
		SyncEnabled:     cfg.VTTSyncEnabled,
		BulkConcurrency: cfg.BulkExportConcurrency,
	})
	if err != nil {
		return nil, errors.Wrap(err, "export orchestrator")
	}

	return v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CharacterService: characters,
		VersionService:   versions,
		ExportService:    exports,
		DiceService:      diceService,
		ImageService:     imageService,
	})
}

func setupLogging(format string) error {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	switch format {
	case "text":
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	case "json":
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	default:
		return fmt.Errorf("unknown log format %q, want text or json", format)
	}
	return nil
}

// logFunc bridges the middleware logger onto slog; the middleware levels
// share slog's numeric values
func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Default().Log(ctx, slog.Level(level), msg, fields...)
}
