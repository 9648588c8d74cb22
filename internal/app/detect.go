package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/homer/internal/cli"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  homer detect \"<text>\" [--env .env] [--timeout 2m]")
		return 2
	}

	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		fmt.Fprintln(os.Stderr, "detect argument must not be empty")
		return 2
	}

	rt, err := newRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	msg, err := rt.controller.Submit(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		return 1
	}

	fmt.Printf(
		"language=%s name=%s confidence=%.1f%%\n",
		msg.Detection.LanguageCode,
		msg.Detection.LanguageName,
		msg.Detection.Confidence*100,
	)
	return 0
}
