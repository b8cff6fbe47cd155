package main // API server entry point

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/database"
	"github.com/deckforge/deckforge/internal/handler"
	"github.com/deckforge/deckforge/internal/middleware"
	"github.com/deckforge/deckforge/internal/queue"
	"github.com/deckforge/deckforge/internal/repository"
	"github.com/deckforge/deckforge/internal/router"
	"github.com/deckforge/deckforge/internal/scryfall"
)

func main() {
	// .env is a development convenience; in production the variables
	// come from the environment itself.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.MigrateUp(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis powers rate limiting and the catalog response cache. A nil
	// client disables both instead of failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	decks := repository.NewDeckRepo(db)
	deckCards := repository.NewDeckCardRepo(db)
	cards := repository.NewCardRepo(db)
	statistics := repository.NewStatisticsRepo(db)

	catalog := scryfall.NewClient(cfg.ScryfallURL)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	deckH := handler.NewDeckHandler(decks, deckCards, statistics)
	deckCardH := handler.NewDeckCardHandler(decks, deckCards, cards)
	cardH := handler.NewCardHandler(cards)
	catalogH := handler.NewCatalogHandler(catalog)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterDecks(e, deckH, deckCardH, cfg.JWTSecret)
	router.RegisterCards(e, cardH, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogH, middleware.ResponseCache(config.LoadCacheConfig(), rdb))

	// The activity consumer owns its own reconnect loop.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
