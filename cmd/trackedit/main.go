package main

import (
	"flag"
	"os"

	. "github.com/amiika/midilib/shared"

	"github.com/amiika/midilib/smfio"
)

func main() {
	inFile := flag.String("in", "", "MIDI file to edit")
	outFile := flag.String("out", "", "where to write the edited MIDI file")
	configFile := flag.String("config", "", "YAML config file")
	quantize := flag.String("quantize", "", "quantize grid as a note name, e.g. '16th' or 'dotted eighth'")
	engine := flag.String("engine", "", "quantize engine: 'grid' or 'quantizer'")
	merge := flag.Bool("merge", false, "merge every track into the first one")
	trackIndex := flag.Int("track", 0, "track used by -name and -instrument")
	name := flag.String("name", "", "new name for -track")
	instrument := flag.String("instrument", "", "instrument for -track")
	info := flag.Bool("info", false, "print a summary of the tracks")
	debug := flag.Bool("debug", false, "debug logging")

	flag.Parse()

	config, err := LoadConfig(*configFile)
	if err != nil {
		NewLogger("trackedit").Fatal(err)
	}
	if *quantize != "" {
		config.Quantize = *quantize
	}
	if *engine != "" {
		config.Engine = *engine
	}
	if *merge {
		config.Merge = true
	}
	if *name != "" {
		config.Names[*trackIndex] = *name
	}
	if *instrument != "" {
		config.Instruments[*trackIndex] = *instrument
	}
	if *debug {
		config.LogLevel = "debug"
	}
	if level, err := config.Level(); err == nil {
		LogLevel = level
	}
	logger := NewLogger("trackedit")

	if *inFile == "" {
		logger.Error("missing -in")
		flag.Usage()
		os.Exit(2)
	}

	logger.Info("reading", "file", *inFile)
	seq, err := smfio.ReadFile(*inFile)
	if err != nil {
		logger.Fatal(err)
	}

	seq, err = Edit(seq, config, logger)
	if err != nil {
		logger.Fatal(err)
	}

	if *info {
		PrintInfo(os.Stdout, seq)
	}

	if *outFile == "" {
		logger.Debug("no -out, nothing written")
		return
	}
	logger.Info("saving to", "filename", *outFile)
	if err := smfio.WriteFile(*outFile, seq); err != nil {
		logger.Fatal(err)
	}
}
