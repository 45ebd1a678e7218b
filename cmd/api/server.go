package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mw "github.com/avolkov/bookstore-api/internal/api/middlewares"
	"github.com/avolkov/bookstore-api/internal/api/router"
	"github.com/avolkov/bookstore-api/internal/books"
	"github.com/avolkov/bookstore-api/internal/repository/sqlconnect"
	storebooks "github.com/avolkov/bookstore-api/internal/store/books"
	"github.com/avolkov/bookstore-api/internal/validate"
	"github.com/avolkov/bookstore-api/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load(".env")

	if err := validate.Env(); err != nil {
		log.Fatalf("bad config: %v", err)
	}
	for _, warn := range validate.HardeningWarnings(os.Getenv("APP_ENV")) {
		log.Printf("[WARN] %s", warn)
	}

	db, err := sqlconnect.ConnectDB()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Connected to Postgres")

	manager := books.NewManager(storebooks.New(db))

	chain := []utils.Middleware{
		mw.Cors,
		mw.RequestID,
		mw.Recovery,
		mw.ResponseTime,
		mw.BodySizeLimit,
		mw.SecurityHeaders,
	}

	// Rate limiting is on only when Redis is configured.
	if url := os.Getenv("REDIS_URL"); url != "" {
		opt, err := redis.ParseURL(url)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		rdb := redis.NewClient(opt)
		if err := validate.PingRedis(rdb, 3*time.Second); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer rdb.Close()
		log.Println("Connected to Redis")

		tb := mw.NewRedisTokenBucket(rdb, 5, 20, mw.PerIPKey("tb"))
		chain = append(chain, tb.Middleware)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           utils.ApplyMiddleware(router.Router(manager), chain...),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Println("Server is running on port:", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalln("Error starting server:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Server stopped")
}
