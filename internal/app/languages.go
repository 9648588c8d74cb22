package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/homer/internal/language"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "languages does not accept positional arguments")
		return 2
	}

	for _, option := range language.Options() {
		fmt.Printf("%s\t%s\t%s\n", option.Code, option.Name, option.Native)
	}
	return 0
}
