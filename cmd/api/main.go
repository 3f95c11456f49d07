package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/ardanovsky/todo-service/internal/auth/http"
	authrepo "github.com/ardanovsky/todo-service/internal/auth/repository"
	authservice "github.com/ardanovsky/todo-service/internal/auth/service"
	"github.com/ardanovsky/todo-service/internal/common/config"
	commoncrypto "github.com/ardanovsky/todo-service/internal/common/crypto"
	"github.com/ardanovsky/todo-service/internal/common/db"
	commonhttp "github.com/ardanovsky/todo-service/internal/common/http"
	"github.com/ardanovsky/todo-service/internal/common/httpmetrics"
	"github.com/ardanovsky/todo-service/internal/common/logger"
	srv "github.com/ardanovsky/todo-service/internal/common/server"
	todohttp "github.com/ardanovsky/todo-service/internal/todo/http"
	todorepo "github.com/ardanovsky/todo-service/internal/todo/repository"
	todoservice "github.com/ardanovsky/todo-service/internal/todo/service"
	userrepo "github.com/ardanovsky/todo-service/internal/user/repository"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_DIR"), "todo-api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	users := userrepo.NewPgRepository(pool)
	tokens := authrepo.NewPgTokenRepository(pool, log)
	todos := todorepo.NewPgRepository(pool)

	hasher := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	idGen := commoncrypto.NewUUIDGenerator()

	auth := authservice.NewAuthService(users, tokens, hasher, idGen, cfg.JWTSecret, log)
	todoSvc := todoservice.NewTodoService(todos, idGen, log)

	router := mux.NewRouter()
	router.HandleFunc("/health", commonhttp.HealthHandler(log)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	authhttp.NewHandler(auth, log, cfg.RequestTimeout).Register(router)
	todohttp.NewHandler(todoSvc, log, cfg.RequestTimeout).Register(router, authhttp.Guard(auth, log))

	rateLimiter := commonhttp.NewStrictRateLimiter()
	base := commonhttp.BuildBaseHandler(log, httpmetrics.Wrap, router)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			base.ServeHTTP(w, r)
			return
		}
		rateLimiter.Middleware()(base).ServeHTTP(w, r)
	})

	server := srv.New(srv.Config{Addr: ":" + cfg.HTTPPort}, handler)
	srv.StartWithGracefulShutdown(server, log)
}
