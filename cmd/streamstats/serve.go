package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hydromet/streamstats/internal/archive"
	"github.com/hydromet/streamstats/internal/hydrostats"
	"github.com/hydromet/streamstats/internal/log"
	"github.com/hydromet/streamstats/internal/server"
	"github.com/hydromet/streamstats/pkg/config"
)

// archiveRun stores the run's tables in the configured SQLite archive.
func archiveRun(cfg *config.Config, results []hydrostats.StationResults) error {
	arc, err := archive.Open(cfg.Output.Archive)
	if err != nil {
		return err
	}
	defer arc.Close()

	runID, err := arc.StoreRun(cfg.StartDate, cfg.EndDate, results)
	if err != nil {
		return err
	}
	log.Infof("archived run %s to %s", runID, cfg.Output.Archive)
	return nil
}

// serveResults blocks serving the results API until SIGINT/SIGTERM.
func serveResults(addr string, results []hydrostats.StationResults) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	srv := server.New(addr, results, log.GetSugaredLogger())
	return srv.Run(ctx)
}
