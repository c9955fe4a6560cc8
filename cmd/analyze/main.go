// Command analyze runs one pipeline pass and prints the report as JSON.
//
// Usage:
//
//	analyze -input listings.json
//	analyze -search -product "Pixel 8" -brand Google -region us
//
// The input file holds {"product": {...}, "observations": [{"seller", "price"}]}.
// Reading from stdin is supported with -input -.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aristath/productpulse/internal/config"
	"github.com/aristath/productpulse/internal/di"
	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/internal/modules/pipeline"
	"github.com/aristath/productpulse/pkg/logger"
)

func main() {
	input := flag.String("input", "", "listings JSON file, or - for stdin")
	search := flag.Bool("search", false, "fetch listings instead of reading them")
	product := flag.String("product", "", "product name for -search")
	brand := flag.String("brand", "", "brand for -search")
	model := flag.String("model", "", "model for -search")
	region := flag.String("region", "", "two-letter market region for -search")
	compact := flag.Bool("compact", false, "print compact JSON")
	flag.Parse()

	if err := run(*input, *search, domain.ProductInfo{
		ProductName:  *product,
		Brand:        *brand,
		Model:        *model,
		MarketRegion: *region,
	}, !*compact); err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(exitCode(err))
	}
}

func run(input string, search bool, product domain.ProductInfo, indent bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout carries the report, so logs go to stderr
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	container, _, err := di.Wire(cfg, log)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var report *pipeline.Report
	if search {
		report, err = container.PipelineService.Search(ctx, product)
	} else {
		var req pipeline.Request
		if req, err = readRequest(input); err != nil {
			return err
		}
		report, err = container.PipelineService.Analyze(ctx, req)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}

func readRequest(path string) (pipeline.Request, error) {
	var req pipeline.Request

	var r io.Reader
	switch path {
	case "":
		return req, fmt.Errorf("-input is required unless -search is set")
	case "-":
		r = os.Stdin
	default:
		f, err := os.Open(path)
		if err != nil {
			return req, err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return req, nil
}

// exitCode distinguishes input problems from unavailable collaborators
func exitCode(err error) int {
	switch pipeline.KindOf(err) {
	case pipeline.KindMalformedInput:
		return 2
	case pipeline.KindClassifierUnavailable, pipeline.KindFetcherUnavailable, pipeline.KindFetchFailed:
		return 3
	default:
		return 1
	}
}
