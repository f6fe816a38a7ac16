package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "listen address, overrides server.addr and PORT")
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync() //nolint:errcheck

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		config.Server.Addr = addr
	}

	logger.Info("starting the resume-matcher", zap.String("version", version))

	an, cleanup, err := newAnalyzer(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the analyzer", zap.Error(err))
	}
	defer cleanup()

	srv := server.New(server.Config{
		Addr:           config.Server.Addr,
		MaxUploadBytes: int64(config.Server.MaxUploadMB) << 20,
		AllowedOrigins: config.Server.AllowedOrigins,
		ReadTimeout:    config.Server.ReadTimeout,
		WriteTimeout:   config.Server.WriteTimeout,
	}, an, document.Default, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("serving http", zap.Error(err))
	}

	logger.Info("server stopped")
}
