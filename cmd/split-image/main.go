package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Alka-null/nbcc2026gamesweb/internal/config"
	"github.com/Alka-null/nbcc2026gamesweb/internal/jigsaw"
	"github.com/Alka-null/nbcc2026gamesweb/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	input := flag.String("in", "", "path to the source image")
	output := flag.String("out", jigsaw.ArchiveName, "path for the output zip archive")
	grid := flag.Int("grid", cfg.JigsawGridSize, "pieces per side")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: split-image -in photo.png [-out pieces.zip] [-grid 4]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatal().Err(err).Str("path", *input).Msg("Failed to read image")
	}

	tiles, err := jigsaw.Split(data, *grid)
	if err != nil {
		log.Fatal().Err(err).Msg("Split failed")
	}

	pieces := make([][]byte, len(tiles))
	for i, t := range tiles {
		pieces[i] = t.PNG
	}

	archive, err := jigsaw.Pack(pieces)
	if err != nil {
		log.Fatal().Err(err).Msg("Pack failed")
	}

	if err := os.WriteFile(*output, archive, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", *output).Msg("Failed to write archive")
	}

	fmt.Printf("Wrote %d pieces (%d bytes) to %s\n", len(pieces), len(archive), *output)
}
