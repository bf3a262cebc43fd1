package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/techipro/konnect-admin/admin"
	"github.com/techipro/konnect-admin/client"
	"github.com/techipro/konnect-admin/console"
	"github.com/techipro/konnect-admin/env"
	"github.com/techipro/konnect-admin/sandbox"
	"github.com/techipro/konnect-admin/session"
)

// Runs one console command, or the sandbox API when the first argument is "sandbox".
func main() {
	envPath := flag.String("env", "", "path to .env file")
	logFormat := flag.String("log-format", "console", "log format (one of 'json', 'console')")
	logLevel := flag.String("log-level", "warn", "minimum log level")
	jsonOutput := flag.Bool("json", false, "print JSON instead of tables")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: konnect-admin [--env FILE] [--log-format console|json] [--log-level LEVEL] <command> ...")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "Run `konnect-admin help` for the list of commands.")
	}
	flag.Parse()

	// Set up structured logging
	zerolog.TimeFieldFormat = time.RFC3339Nano
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Str("log_level", *logLevel).Msg("unknown log level given")
	}
	var logger zerolog.Logger
	switch *logFormat {
	case "console":
		output := zerolog.ConsoleWriter{Out: os.Stderr}
		logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	case "json":
		logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	default:
		log.Fatal().Str("log_format", *logFormat).Msg("unknown log format given")
	}
	stdlog.SetFlags(0)
	stdlog.SetOutput(logger)

	// Load the .env file if it is specified
	if envPath != nil && *envPath != "" {
		err := godotenv.Load(*envPath)
		if err != nil {
			logger.Fatal().Err(err).Str("env_path", *envPath).Msg("error loading .env file")
		} else {
			logger.Info().Str("env_path", *envPath).Msg("loaded environment variables from file")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Propagate termination signals to the cancellation of the context
	go func() {
		<-done
		cancel()
	}()

	args := flag.Args()
	if len(args) > 0 && args[0] == "sandbox" {
		runSandbox(ctx, logger)
		return
	}

	// The console parses its own global flags
	if *jsonOutput {
		args = append([]string{"--json"}, args...)
	}
	os.Exit(runConsole(ctx, logger, args))
}

func runConsole(ctx context.Context, logger zerolog.Logger, args []string) int {
	store, err := session.NewStoreFromEnv()
	if err != nil {
		logger.Error().Err(err).Msg("could not set up the session store")
		return console.ExitError
	}
	if closer, ok := store.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing session store")
			}
		}()
	}
	sess := session.New(store)

	con := console.New(console.Options{
		Session:   sess,
		LoginPath: env.GetEnvOr("KONNECT_LOGIN_PATH", console.DefaultLoginPath),
		Logger:    logger,
	})

	api, err := client.NewFromEnv(sess, con, con, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("could not configure the API client")
		return console.ExitError
	}
	con.Attach(admin.New(api))

	return con.Run(ctx, args)
}

func runSandbox(ctx context.Context, logger zerolog.Logger) {
	port := 8080
	if value, err := env.GetIntEnv("sandbox port", "SANDBOX_PORT"); err == nil {
		port = value
	} else if !env.IsMissing(err) {
		logger.Fatal().Err(err).Msg("could not load SANDBOX_PORT from env")
	}

	server, err := sandbox.NewServerFromEnv(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not initialize sandbox server")
	}

	// Connect to the data provider
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	defer connectCancel()
	if err := server.Connect(connectCtx); err != nil {
		logger.Fatal().Err(err).Msg("could not connect to the sandbox data provider")
	}

	// Disconnect automatically
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := server.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("error disconnecting from the sandbox data provider")
		}
	}()

	adminToken, userToken, err := server.DemoTokens(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not issue demo tokens")
	}
	logger.Info().
		Str("base_url", fmt.Sprintf("http://localhost:%d%s", port, sandbox.BasePath)).
		Str("admin_token", adminToken).
		Str("user_token", userToken).
		Msg("sandbox tokens issued")

	if err := server.Serve(ctx, port); err != nil {
		logger.Error().Err(err).Msg("sandbox server stopped")
	}
}
