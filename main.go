package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/room4-2/OpenOrder/config"
	"github.com/room4-2/OpenOrder/dialogue"
	"github.com/room4-2/OpenOrder/gemini"
	"github.com/room4-2/OpenOrder/menu"
	"github.com/room4-2/OpenOrder/order"
	"github.com/room4-2/OpenOrder/server"
	"github.com/room4-2/OpenOrder/session"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load the menu catalog
	catalog := menu.Default()
	if cfg.MenuFile != "" {
		catalog, err = menu.Load(cfg.MenuFile)
		if err != nil {
			log.Fatalf("Failed to load menu: %v", err)
		}
	}
	log.Printf("📋 Menu loaded: %d flavors", len(catalog.Flavors()))

	// LLM collaborator
	chat, err := gemini.NewChat(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer chat.Close()

	// Durable order log, optionally mirrored to Redis
	orderLog := order.NewFileLog(cfg.OrdersFile, newRedisClient(cfg))
	committer := order.NewCommitter(orderLog)

	switch cfg.Mode {
	case "console":
		runConsole(cfg, catalog, chat, committer)

	case "websocket":
		runServer(cfg, catalog, chat, committer)

	case "both":
		go runServer(cfg, catalog, chat, committer)
		runConsole(cfg, catalog, chat, committer)
	}

	log.Println("Server stopped")
}

// newRedisClient connects to Redis for the order-log mirror, or
// returns nil when Redis is unavailable.
func newRedisClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// runConsole runs a single ordering conversation on stdin/stdout.
func runConsole(cfg *config.Config, catalog *menu.Catalog, completer dialogue.Completer, committer *order.Committer) {
	s := dialogue.NewSession(uuid.New().String(), catalog, completer, committer, cfg.MaxTranscript)

	fmt.Printf("AI: %s\n", s.Greeting())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			return
		}

		reply := s.ProcessTurn(context.Background(), scanner.Text())
		fmt.Printf("AI: %s\n", reply.Text)

		if reply.Done {
			return
		}
	}
}

// runServer runs the websocket chat server with graceful shutdown.
func runServer(cfg *config.Config, catalog *menu.Catalog, completer dialogue.Completer, committer *order.Committer) {
	sessionManager, err := session.NewManager(cfg, catalog, completer, committer)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go sessionManager.StartCleanupRoutine(ctx)

	srv := server.NewServerWebsocket(cfg, sessionManager)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\nReceived shutdown signal...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
		log.Fatalf("Server error: %v", err)
	}
}
