package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/karlmutch/errors"

	"github.com/karlmutch/lume"
	"github.com/karlmutch/lume/version"

	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
)

var (
	logger = logxi.New("lumed")

	cfgFile = flag.String("config", "lume.yaml", "The file containing the device and server configuration")
	verbose = flag.Bool("v", false, "When enabled will print internal logging for this tool")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       addressable LED effect player (lumed)      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "lumed animates an addressable LED strip or disc and pushes frames to an OPC based fadecandy server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s\n", os.Args[0], version.BuildTime, version.GitHash))

	cfg, err := lume.LoadConfig(*cfgFile)
	if err != nil {
		logger.Fatal(err.Error())
	}

	light, err := cfg.Light()
	if err != nil {
		logger.Fatal(err.Error())
	}

	errorC := make(chan errors.Error, 1)
	quitC := make(chan struct{})

	go func() {
		for {
			select {
			case err := <-errorC:
				if err != nil {
					logger.Warn(err.Error())
				}
			case <-quitC:
				return
			}
		}
	}()

	player := lume.NewPlayer(light, cfg.FPS, cfg.Server, cfg.Effect, errorC)
	go player.Run(quitC)

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	<-stopC

	close(quitC)
}
