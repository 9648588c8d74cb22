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
	"horse.fit/homer/internal/reader"
)

func runSummarize(args []string) int {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")
	pageURL := fs.String("url", "", "Summarize the readable text of a web page instead of a literal text")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	url := strings.TrimSpace(*pageURL)
	if (url == "") == (fs.NArg() != 1) {
		printSummarizeUsage()
		return 2
	}

	rt, err := newRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	text := ""
	if url != "" {
		text, err = reader.PageText(ctx, url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to extract page text: %v\n", err)
			return 1
		}
	} else {
		text = strings.TrimSpace(fs.Arg(0))
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "summarize input must not be empty")
		return 2
	}

	msg, err := rt.controller.Submit(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		return 1
	}

	summarized, err := rt.controller.RequestSummary(ctx, msg.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Summarization failed: %v\n", err)
		return 1
	}
	if summarized.Summary == nil {
		if lastErr := rt.controller.Summarizer().LastError(); lastErr != nil {
			fmt.Fprintf(os.Stderr, "Summarization failed: %v\n", lastErr)
		} else {
			fmt.Fprintln(os.Stderr, "Summarization produced no result")
		}
		return 1
	}

	fmt.Println(*summarized.Summary)
	return 0
}

func printSummarizeUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  homer summarize \"<text>\" [--env .env] [--timeout 2m]")
	fmt.Fprintln(os.Stderr, "  homer summarize --url <page-url> [--env .env] [--timeout 2m]")
}
