package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docgraph/docgraph"
)

// timeRound keeps printed durations readable.
const timeRound = time.Millisecond

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := docgraph.CrawlConfig{
		Seeds:        c.Seeds,
		MaxDepth:     c.MaxDepth,
		Delay:        c.Delay,
		Concurrency:  c.Concurrency,
		FetchTimeout: c.FetchTimeout,
	}

	run, err := deps.Scheduler.Start(deps.Ctx, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	// First interrupt requests a graceful stop: workers finish their
	// current page, nothing new is dequeued.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			fmt.Fprintln(deps.Stderr, "interrupt received, finishing in-flight pages")
			run.Stop()
		}
	}()

	if err := run.Wait(deps.Ctx); err != nil {
		return err
	}

	snap := run.Status()
	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%d failed) in %s\n",
		snap.Crawled, snap.Failed, snap.FinishedAt.Sub(snap.StartedAt).Round(timeRound))

	return nil
}
