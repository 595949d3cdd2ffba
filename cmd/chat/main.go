package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"chatpump/internal/admin"
	"chatpump/internal/chat"
	"chatpump/internal/config"
	"chatpump/internal/db"
	"chatpump/internal/observability"
	"chatpump/internal/plan"
	"chatpump/internal/repository"
)

func main() {
	cfg := config.Load()

	observability.Start(cfg.MetricsPort)

	pool, err := db.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no Postgres (pgxpool): %v", err)
	}
	defer pool.Close()

	sqlDB, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no Postgres (database/sql): %v", err)
	}
	defer sqlDB.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})

	fragmentRepo := &repository.FragmentRepository{DB: pool}
	profileRepo := &repository.ProfileRepository{DB: pool}
	messageRepo := &repository.MessageRepository{DB: pool}
	logRepo := &repository.LogRepository{DB: pool}
	keyRepo := &repository.KeyRepository{DB: pool}
	schemaRepo := &repository.SchemaRepository{DB: sqlDB}

	sessionStore := &chat.SessionStore{Client: redisClient}

	newClient := func(apiKey string) chat.Completer {
		return openai.NewClient(apiKey)
	}

	orc := &chat.Orchestrator{
		Fragments:   fragmentRepo,
		Profiles:    profileRepo,
		Messages:    messageRepo,
		Logs:        logRepo,
		Keys:        keyRepo,
		Cache:       sessionStore,
		Model:       cfg.ChatModel,
		FallbackKey: cfg.OpenAIKey,
		NewClient:   newClient,
	}

	generator := &plan.Generator{
		Themes:      fragmentRepo,
		Profiles:    profileRepo,
		Keys:        keyRepo,
		Model:       cfg.ChatModel,
		FallbackKey: cfg.OpenAIKey,
		NewClient:   newClient,
	}

	mux := http.NewServeMux()
	mux.Handle("/chat", chat.Handler(orc))
	mux.Handle("/chat/history", chat.HistoryHandler(messageRepo))
	mux.Handle("/action-plan", plan.Handler(generator))
	mux.Handle("/admin/prompt-logs", admin.PromptLogsHandler(logRepo))
	mux.Handle("/admin/schema", admin.SchemaHandler(schemaRepo))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, "postgres indisponível", http.StatusServiceUnavailable)
			return
		}
		if err := redisClient.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis indisponível", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	log.Printf("ChatPump rodando :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatalf("Erro no servidor HTTP: %v", err)
	}
}
