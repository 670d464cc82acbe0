package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/dkovacev/ironlog/internal/extract"
	"github.com/dkovacev/ironlog/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// one-shot extraction: read a raw workout log, call the model, print or
// write the validated entries as CSV or JSON.
func main() {
	inputPath := flag.String("input", "", "path to the raw workout log file (empty for stdin)")
	date := flag.String("date", "", "workout date in YYYY-MM-DD format (required)")
	outputPath := flag.String("output", "", "path to write the result to (empty for stdout)")
	detailed := flag.Bool("detailed", false, "one CSV row per set instead of one per entry")
	asJson := flag.Bool("json", false, "output the full result as JSON instead of CSV")
	dryRun := flag.Bool("dry-run", false, "print the prompt and exit without calling the model")
	logLevel := flag.String("log-level", "error", "log level")
	flag.Parse()

	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	}

	if !dateRe.MatchString(*date) {
		fmt.Fprintln(os.Stderr, "date is required, in YYYY-MM-DD format (-date)")
		os.Exit(1)
	}

	rawLog, err := readInput(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %s\n", err)
		os.Exit(1)
	}
	if len(rawLog) == 0 {
		fmt.Fprintln(os.Stderr, "input is empty")
		os.Exit(1)
	}

	if *dryRun {
		fmt.Println(extract.BuildPrompt(string(rawLog), *date))
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY env var not set")
		os.Exit(1)
	}

	geminiClient := extract.NewGeminiClient(extract.GeminiConfig{
		BaseURL:         "https://generativelanguage.googleapis.com",
		APIKey:          apiKey,
		Model:           "gemini-2.5-flash",
		Temperature:     0.1,
		MaxOutputTokens: 8192,
	}, &http.Client{Timeout: 2 * time.Minute})

	service := extract.NewService(geminiClient, metrics.NewManager("ironlog", "cli", prometheus.NewRegistry()))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	res, err := service.Extract(ctx, string(rawLog), *date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %s\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create output file: %s\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "close output file: %s\n", err)
			}
		}()
		out = f
	}

	if *asJson {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "encode result: %s\n", err)
			os.Exit(1)
		}
	} else {
		writeCSV := extract.WriteAggregatedCSV
		if *detailed {
			writeCSV = extract.WriteDetailedCSV
		}
		if err := writeCSV(out, res.Accepted); err != nil {
			fmt.Fprintf(os.Stderr, "write csv: %s\n", err)
			os.Exit(1)
		}
	}

	for _, fix := range res.Fixes {
		fmt.Fprintf(os.Stderr, "fix applied: %s\n", fix)
	}
	for _, rej := range res.Rejected {
		for _, fe := range rej.Errors {
			fmt.Fprintf(os.Stderr, "entry %d rejected: %s: %s\n", rej.Index, fe.Field, fe.Reason)
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
