package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sotiny/sotiny/internal/catalog"
	"github.com/sotiny/sotiny/internal/common/clock"
	"github.com/sotiny/sotiny/internal/common/uuid"
	"github.com/sotiny/sotiny/internal/generator"
	"github.com/sotiny/sotiny/internal/handlers/discord"
	"github.com/sotiny/sotiny/internal/render"
	sessionRepo "github.com/sotiny/sotiny/internal/repositories/session"
	"github.com/sotiny/sotiny/internal/services/draft"
)

type config struct {
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	CardFile string `env:"CARD_FILE" envDefault:"cards.json"`
	AssetDir string `env:"ASSET_DIR" envDefault:"images"`

	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"6h"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	RenderColumns int `env:"RENDER_COLUMNS" envDefault:"5"`
}

func main() {
	// A local .env is optional
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Load the card catalog
	cat, err := catalog.Load(&catalog.LoadConfig{
		CardFile: cfg.CardFile,
		AssetDir: cfg.AssetDir,
	})
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded catalog with %d cards", cat.Size())

	// Initialize the session repository
	repo, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	// Initialize the pool generator
	poolGen, err := generator.New(&generator.Config{
		Catalog: cat,
	})
	if err != nil {
		log.Fatalf("Failed to create pool generator: %v", err)
	}

	// Initialize the pool renderer
	renderer, err := render.New(&render.Config{
		Catalog: cat,
		Columns: cfg.RenderColumns,
	})
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	// Initialize the draft service
	draftSvc, err := draft.New(&draft.Config{
		SessionRepo:  repo,
		Generator:    poolGen,
		Catalog:      cat,
		Clock:        &clock.DefaultClock{},
		UUID:         uuid.New(),
		SessionTTL:   cfg.SessionTTL,
		StoreTimeout: cfg.StoreTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to create draft service: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		DraftService:  draftSvc,
		Renderer:      renderer,
		Catalog:       cat,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
