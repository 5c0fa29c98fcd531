package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"codeberg.org/algopatterns/codeassist/internal/codeassist"
	"codeberg.org/algopatterns/codeassist/internal/config"
	"codeberg.org/algopatterns/codeassist/internal/logger"
	"codeberg.org/algopatterns/codeassist/internal/tui"
	"codeberg.org/algopatterns/codeassist/internal/workflow"
)

func usage() {
	fmt.Println("Usage: codeassist [command] [options]")
	fmt.Println("Commands:")
	fmt.Println("  tui       - interactive workspace (default)")
	fmt.Println("  generate  - generate code for a problem statement")
	fmt.Println("  optimize  - optimize existing code")
	fmt.Println("\nOptions:")
	fmt.Println("  -api-url <url>   - base URL of the code service")
	fmt.Println("  -lang <name>     - python or javascript")
	fmt.Println("  -optimize        - (generate) optimize the generated code as well")
	fmt.Println("  -file <path>     - (optimize) file to read code from, - for stdin")
	fmt.Println("  -copy            - copy the final code to the clipboard")
}

func main() {
	command := "tui"
	args := os.Args[1:]

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	var flags config.Flags

	switch command {
	case "tui":
		flags = config.ParseTUIFlags(args)

	case "generate":
		flags = config.ParseGenerateFlags(args)

	case "optimize":
		flags = config.ParseOptimizeFlags(args)

	case "help":
		usage()
		return

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}

	if err := cfg.ApplyFlags(flags); err != nil {
		logger.Fatal("invalid options", "error", err)
	}

	if err := run(command, cfg, flags); err != nil {
		if !errors.Is(err, errShown) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(command string, cfg *config.Config, flags config.Flags) error {
	closeLog, err := logger.Setup(cfg.LogFile, cfg.Environment)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := codeassist.NewClient(cfg.APIURL,
		codeassist.WithRequestTimeout(cfg.RequestTimeout),
		codeassist.WithConnectTimeout(cfg.ConnectTimeout),
		codeassist.WithResponseHeaderTimeout(cfg.HeaderTimeout),
		codeassist.WithIdleConnTimeout(cfg.IdleTimeout),
		codeassist.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		codeassist.WithUserAgent(cfg.UserAgent),
		codeassist.WithRequestLogging(),
		codeassist.WithRequestID(),
	)

	ctrl := workflow.New(client,
		workflow.WithLanguage(cfg.DefaultLanguage()),
		workflow.WithRequestTimeout(cfg.RequestTimeout),
		workflow.WithLogger(logger.With("component", "workflow", "command", command)),
	)

	logger.Info("starting codeassist",
		"command", command,
		"api_url", client.BaseURL(),
		"language", cfg.DefaultLanguage(),
		"environment", cfg.Environment,
	)

	switch command {
	case "generate":
		return runGenerate(ctx, ctrl, flags, newOutput())

	case "optimize":
		return runOptimize(ctx, ctrl, flags, newOutput())

	default:
		ctrl.SetProblemStatement(strings.Join(flags.Args, " "))
		return tui.Run(ctx, ctrl, tui.WithStyle(terminalStyle(os.Stdout)))
	}
}
