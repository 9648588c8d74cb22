package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/homer/internal/capability"
	"horse.fit/homer/internal/cli"
	"horse.fit/homer/internal/language"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")
	targetLang := fs.String("to", "", "Target language (ISO 639-1, for example: en, fr)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		printTranslateUsage()
		return 2
	}

	target := language.NormalizeCode(*targetLang)
	if target == "" {
		fmt.Fprintln(os.Stderr, "--to is required and must be a valid language code")
		return 2
	}

	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		fmt.Fprintln(os.Stderr, "translate argument must not be empty")
		return 2
	}

	rt, err := newRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Submit first so translation starts from a detected source language,
	// exactly as the chat pipeline does.
	msg, err := rt.controller.Submit(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		return 1
	}

	translated, err := rt.controller.RequestTranslation(ctx, msg.ID, target)
	if err != nil {
		var pairErr *capability.PairError
		if errors.As(err, &pairErr) {
			fmt.Fprintf(os.Stderr, "Unsupported pair: %v\n", pairErr)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		return 1
	}
	if translated.Translation == nil {
		fmt.Fprintln(os.Stderr, "Translation produced no result")
		return 1
	}

	fmt.Printf(
		"source=%s target=%s (%s)\n%s\n",
		msg.Detection.LanguageCode,
		translated.Translation.TargetLanguageCode,
		translated.Translation.TargetLanguageName,
		translated.Translation.Text,
	)
	return 0
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  homer translate \"<text>\" --to <lang> [--env .env] [--timeout 2m]")
}
