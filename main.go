package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nijaru/yt-summary/config"
	"github.com/nijaru/yt-summary/handlers/api"
	"github.com/nijaru/yt-summary/logger"
	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "yt-summary",
		Short: "Fetch YouTube transcripts and summarize them with an LLM",
		RunE:  runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Endpoints:
  GET  /api/health     - Health check
  POST /api/transcript - Fetch transcript and summarize
  POST /api/summarize  - Summarize a supplied transcript`,
		RunE: runServe,
	}

	summarizeCmd := &cobra.Command{
		Use:   "summarize <youtube-url>",
		Short: "Fetch the transcript of one video, summarize it and print the JSON result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummarize,
	}

	rootCmd.AddCommand(serveCmd, summarizeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid configuration")
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, errors.Wrap(err, "initialize logger")
	}
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx := context.Background()
	deps, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	server := api.NewServer(cfg,
		api.WithServices(deps.Video, deps.Summary),
		api.WithLogger(log),
	)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Server shutdown error")
		}
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("Server error")
		return err
	}
	return nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.RequestTimeout)
	defer cancel()

	deps, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	result, err := deps.Video.Process(ctx, args[0])
	if err != nil {
		_, body := utils.ErrorBody(err)
		if encErr := enc.Encode(body); encErr != nil {
			return encErr
		}
		return err
	}
	return enc.Encode(models.NewTranscriptResponse(result))
}
