package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	cg "github.com/Dealer86/Monte-Carlo/api/coingecko"
	c "github.com/Dealer86/Monte-Carlo/core"
	r "github.com/Dealer86/Monte-Carlo/repos"
)

func main() {
	// initialize context and signal handler, listen for interrupt and term signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// load in environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Infof(".env not loaded: %v", err)
	}

	configureLogging(os.Getenv("LOG_LEVEL"))

	// get coingecko client, the only external price source for now
	cgClient := cg.GetClient()

	// run history is optional, the service works without a database
	var runHistory *r.Postgres
	if connectionString := os.Getenv("DATABASE_URL"); connectionString != "" {
		pg, err := r.GetPostgresConnection(ctx, connectionString)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()
		runHistory = pg
	} else {
		log.Warn("DATABASE_URL not set, run history will not be recorded")
	}

	sc := &c.ServiceContext{
		Context:     ctx,
		PriceSource: cgClient,
		RunHistory:  runHistory,
	}

	// get http server, makes all of the endpoints and routes
	s := c.GetHttpServer(sc)

	// start http server in goroutine
	go func() {
		log.Infof("Starting monte carlo server on %s", s.Addr)
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// wait here until the context is closed (ie, ctrl+C)
	<-ctx.Done()
	log.Info("Received shutdown signal, shutting down gracefully...")

	// this gives the server 10 seconds to shutdown gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Server shutdown error: %v", err)
	}

	log.Info("Server stopped successfully")
}

func configureLogging(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
