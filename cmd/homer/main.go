package main

import (
	"os"

	"horse.fit/homer/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
