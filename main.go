package main

import (
	"github.com/Scalingo/sclng-top-languages/cmd"
	_ "github.com/joho/godotenv/autoload"
)

// Version information - set via ldflags at build time
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)
	cmd.Execute()
}
