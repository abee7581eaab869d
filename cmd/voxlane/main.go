// voxlane: voice query gateway
// Accepts webhook audio requests and answers them with synthesized speech.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awspolly "github.com/aws/aws-sdk-go-v2/service/polly"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"

	"github.com/voxlane/voxlane/internal/config"
	"github.com/voxlane/voxlane/internal/log"
	"github.com/voxlane/voxlane/pkg/pipeline"
	"github.com/voxlane/voxlane/pkg/reply"
	"github.com/voxlane/voxlane/pkg/storage"
	"github.com/voxlane/voxlane/pkg/synth"
	"github.com/voxlane/voxlane/pkg/transcribe"
	"github.com/voxlane/voxlane/pkg/translate"
	"github.com/voxlane/voxlane/pkg/voices"
	"github.com/voxlane/voxlane/pkg/webhook"
)

var (
	version = "1.0.0"
	port    = flag.Int("port", config.DefaultPort, "HTTP server port")
	debug   = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	cfg.Debug = *debug
	cfg.Port = *port
	cfg.LoadEnv()

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)
	logger := log.L()

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Object storage, provisioning the bucket when missing.
	store, err := storage.NewMinio(ctx, storage.MinioConfig{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		Secure:    cfg.StorageSecure,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	// AWS-backed collaborators share one client configuration.
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logger.Error("aws config load failed", "error", err)
		os.Exit(1)
	}

	runner := transcribe.NewRunner(
		transcribe.NewAWS(awstranscribe.NewFromConfig(awsCfg), logger),
		transcribe.WithLogger(logger),
	)

	gemini, err := reply.NewGemini(
		reply.WithAPIKey(cfg.GeminiKey),
		reply.WithLogger(logger),
	)
	if err != nil {
		logger.Error("gemini init failed", "error", err)
		os.Exit(1)
	}
	defer gemini.Close()
	replier := reply.NewGenerator(gemini, logger)

	resolver := voices.NewResolver(
		voices.DefaultTable(),
		translate.NewAWS(awstranslate.NewFromConfig(awsCfg), logger),
		cfg.DefaultLanguage,
		logger,
	)

	dispatcher := synth.NewDispatcher(
		synth.NewPolly(awspolly.NewFromConfig(awsCfg), logger),
		synth.NewElevenLabs(
			synth.WithAPIKey(cfg.ElevenLabsKey),
			synth.WithLogger(logger),
		),
		logger,
	)

	p := pipeline.New(store, runner, replier, resolver, dispatcher, pipeline.NewCollector(), logger)
	server := webhook.NewServer(p, cfg.VerifyToken, version, logger)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := server.Listen(addr); err != nil {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	logger.Info("voxlane started",
		"version", version,
		"port", cfg.Port,
		"bucket", cfg.StorageBucket,
		"default_language", cfg.DefaultLanguage,
	)

	<-ctx.Done()

	logger.Info("shutting down")
	if err := server.App().ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
