package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	slackclient "threadscan/clients/slack"
	"threadscan/config"
	"threadscan/handlers"
	"threadscan/services/analyzer"
	"threadscan/services/keywords"
	"threadscan/services/links"
	"threadscan/services/reporter"
	slackusecase "threadscan/usecases/slack"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	slackClient := slackclient.NewSlackClient(cfg.SlackConfig.BotToken)

	// Verify the bot token before accepting events
	authTest, err := slackClient.AuthTest()
	if err != nil {
		return err
	}
	log.Printf("✅ Authenticated as bot user %s in team %s", authTest.UserID, authTest.TeamID)

	matcher, err := keywords.NewMatcher(cfg.Keywords)
	if err != nil {
		return err
	}

	resolver := links.NewResolver(slackClient)
	threadAnalyzer := analyzer.NewAnalyzer(slackClient, matcher, resolver, cfg.Location, cfg.ReplyPageLimit)
	threadReporter := reporter.NewReporter(slackClient, reporter.NewSleeper(), cfg.PostInterval, cfg.CleanupDelay)
	slackUseCase := slackusecase.NewSlackUseCase(slackClient, threadAnalyzer, threadReporter)
	slackHandler := handlers.NewSlackEventsHandler(cfg.SlackConfig.SigningSecret, slackUseCase)

	// Create a new router
	router := mux.NewRouter()
	slackHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start the server in a goroutine so shutdown signals can be handled
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on http://localhost:%s", cfg.Port)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		log.Printf("⚠️ Shutdown signal received: %v", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("❌ Graceful shutdown failed: %v", err)
			return server.Close()
		}
	}

	return nil
}
