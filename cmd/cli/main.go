package main

import (
	"flag"

	"summarizer/internal/commander"
)

func main() {
	configFile := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	cmd := commander.NewCommander(*configFile)
	cmd.Start()
}
