package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/replaycore/s2demo/demostream"
)

func runDownload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	url := fs.String("url", "", "broadcast relay base URL")
	output := fs.String("output", "broadcast.dem.bin", "output file path")
	appID := fs.String("app-id", "", "optional x-dota-steam-appid header value")
	startFragment := fs.Int("start-fragment", 0, "fragment number to begin fetching from")
	fs.Parse(args)

	if *url == "" {
		return fmt.Errorf("usage: s2demo download --url <url> [--output path] [--app-id n]")
	}

	var opts []demostream.HTTPOption
	if *appID != "" {
		opts = append(opts, demostream.WithAppID(*appID))
	}
	if *startFragment != 0 {
		opts = append(opts, demostream.WithStartFragment(*startFragment))
	}
	stream := demostream.NewHTTPBroadcastStream(*url, opts...)

	out, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := drainToFile(ctx, stream, out)
	if err != nil {
		return fmt.Errorf("download %s: %w", *url, err)
	}

	slog.Info("download complete", "url", *url, "output", *output, "commands_written", n)
	return nil
}

// drainToFile reads every command the broadcast stream offers, writing
// each command's body (not its header) to out, until the caller's context is
// cancelled (an HTTP broadcast never reports EOF on its own).
func drainToFile(ctx context.Context, stream demostream.DemoStream, out io.Writer) (int, error) {
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, nil
		}

		hdr, err := stream.ReadCmdHeader(ctx)
		if err != nil {
			return count, err
		}
		body, err := stream.ReadCmd(ctx, hdr)
		if err != nil {
			return count, err
		}
		if _, err := out.Write(body); err != nil {
			return count, err
		}
		count++
	}
}
