package main

import (
	"fmt"
	"os"
)

// overridden by the linker on release builds.
var version = "devel"

func main() {
	cfg := LoadConfigOrDefault()
	cli := parseArgs(os.Args[1:], cfg)

	switch cli.mode {
	case versionMode:
		fmt.Println("mosey", version)
	case monitorMode:
		monitorMain(cli.Monitor)
	case runMode:
		runMain(cli.Run)
	}
}
