package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/festa/internal/seedevents"
)

// Default configuration constants.
const (
	defaultNumEvents  = 1000
	defaultAttended   = 20
	defaultTopN       = 25
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numEvents = flag.Int("events", defaultNumEvents, "Number of candidate events to generate and submit")
		attended  = flag.Int("attended", defaultAttended, "Number of attended events to seed the profile with")
		topN      = flag.Int("top", defaultTopN, "Number of recommendations to fetch")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile   = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose   = flag.Bool("verbose", false, "Log the full recommendation listing")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedevents.ShowHelp()
		return
	}

	if err := seedevents.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seedevents.Config{
		BaseURL:   *baseURL,
		NumEvents: *numEvents,
		Attended:  *attended,
		TopN:      *topN,
		Workers:   *workers,
		Timeout:   *timeout,
		LogFile:   *logFile,
		Verbose:   *verbose,
	}

	if err := seedevents.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		return
	}
}
