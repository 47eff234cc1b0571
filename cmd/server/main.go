package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"caderneta/internal/config"
	"caderneta/internal/handlers"
	"caderneta/internal/ledger"
	"caderneta/internal/metrics"
	"caderneta/internal/quote"
	"caderneta/internal/storage"
	"caderneta/internal/voice"
)

func main() {
	var configPath, port string

	rootCmd := &cobra.Command{
		Use:   "caderneta",
		Short: "Caderneta - personal finance tracker",
		Long:  "Caderneta records income and expenses to a CSV ledger, draws summary charts and accepts dictated entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if port != "" {
				cfg.ServerPort = port
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			return serve(cfg)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	logger := newLogger(cfg)

	store := ledger.NewStore(cfg.LedgerPath)
	recorder := ledger.NewRecorder(store)

	charts, err := storage.NewLocalStorage(cfg.StaticDir)
	if err != nil {
		return fmt.Errorf("failed to initialize chart storage: %w", err)
	}
	temp, err := storage.NewLocalStorage(cfg.TempAudioDir)
	if err != nil {
		return fmt.Errorf("failed to initialize temp audio storage: %w", err)
	}

	transcriber, err := voice.NewTranscriber(cfg.Speech)
	if err != nil {
		return err
	}
	intake := voice.NewIntake(temp, voice.NewFFmpeg(cfg.FFmpegPath), transcriber, recorder, logger)

	h := handlers.New(
		store,
		recorder,
		quote.NewProvider(cfg.QuotesPath),
		charts,
		intake,
		metrics.New(),
		cfg.TemplateDir,
	)

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("ledger", cfg.LedgerPath).
		Str("speech_backend", cfg.Speech.Backend).
		Msg("server starting")
	for _, ip := range lanIPs() {
		logger.Info().Msgf("LAN access: http://%s:%s", ip, cfg.ServerPort)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.Routes(logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr)
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	logger = logger.Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

func lanIPs() []string {
	var ips []string
	ifaces, err := net.Interfaces()
	if err != nil {
		return ips
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil {
				continue
			}
			ip = ip.To4()
			if ip == nil {
				continue
			}
			ips = append(ips, ip.String())
		}
	}
	return ips
}
