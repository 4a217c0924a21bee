package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/replaycore/s2demo/demostream"
	"github.com/replaycore/s2demo/parser"
	"github.com/replaycore/s2demo/seekindex"
)

// runSeek benchmarks n random RunToTick calls against path, building a
// seek index on the first full pass and persisting it to a `.s2idx`
// side-car file for reuse on subsequent runs (SPEC_FULL.md §6).
func runSeek(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seek", flag.ExitOnError)
	ticks := fs.Int("ticks", 10, "number of random RunToTick calls to benchmark")
	codecName := fs.String("codec", "s2", "seek index codec: none, lz4, s2, zstd")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: s2demo seek <path> --ticks n")
	}
	path := fs.Arg(0)
	codecID, err := parseCodecName(*codecName)
	if err != nil {
		return err
	}

	idxPath := path + ".s2idx"
	idx, err := seekindex.Load(idxPath)
	if err != nil {
		idx = seekindex.New()
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stream, err := demostream.OpenFile(f)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	p := parser.FromStream(stream, nil, parser.WithSeekIndex(idx))
	if err := p.RunToEnd(ctx); err != nil {
		return fmt.Errorf("build index for %s: %w", path, err)
	}
	maxTick := p.Clock().Tick()

	if err := seekindex.Save(idxPath, idx, codecID); err != nil {
		slog.Warn("failed to persist seek index", "path", idxPath, "error", err)
	}

	rng := rand.New(rand.NewSource(1))
	start := time.Now()
	for i := 0; i < *ticks; i++ {
		target := int32(rng.Intn(int(maxTick) + 1))
		if err := p.RunToTick(ctx, target); err != nil {
			return fmt.Errorf("seek to tick %d: %w", target, err)
		}
	}
	elapsed := time.Since(start)

	slog.Info("seek benchmark complete",
		"path", path,
		"ticks_benchmarked", *ticks,
		"index_entries", idx.Len(),
		"total_time", elapsed,
		"avg_time_per_seek", elapsed/time.Duration(*ticks),
	)
	return nil
}

func parseCodecName(name string) (seekindex.CodecID, error) {
	switch strings.ToLower(name) {
	case "none":
		return seekindex.CodecNone, nil
	case "lz4":
		return seekindex.CodecLZ4, nil
	case "s2":
		return seekindex.CodecS2, nil
	case "zstd":
		return seekindex.CodecZstd, nil
	default:
		return 0, fmt.Errorf("unknown seek index codec %q", name)
	}
}
