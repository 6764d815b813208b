package main

import (
	"flag"
	"os"

	"github.com/ttpr0/go-extract/extract"
	"github.com/ttpr0/go-extract/parser"
	"golang.org/x/exp/slog"
)

func main() {
	config_path := flag.String("config", "./config.yaml", "path to the config file")
	flag.Parse()

	config, err := ReadConfig(*config_path)
	if err != nil {
		slog.Error("failed to read config: " + err.Error())
		os.Exit(1)
	}
	SetupLogging(config.Debug)

	containers := extract.NewContainers(extract.Options{
		Spill:       config.Extract.Spill.Enabled,
		SpillDir:    config.Extract.Spill.Directory,
		SpillBudget: config.Extract.Spill.Budget,
	})

	decoder := parser.NewDrivingDecoder()
	slog.Info("scanning source file", slog.String("file", config.Extract.Source))
	if err := parser.ParseOSM(config.Extract.Source, decoder, containers); err != nil {
		slog.Error("failed to parse source file: " + err.Error())
		os.Exit(1)
	}

	containers.PrepareData()

	if err := containers.Store(config.Extract.Output); err != nil {
		slog.Error("failed to store output: " + err.Error())
		os.Exit(1)
	}
	if config.Extract.GeoJSON {
		if err := ExportGeoJSON(containers, config.Extract.Output+".geojson"); err != nil {
			slog.Error("failed to export geojson: " + err.Error())
			os.Exit(1)
		}
	}
}
