package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lumina-gear/support-api/internal/ai"
	"github.com/lumina-gear/support-api/internal/chat"
)

func main() {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// --- DB ---
	// DATABASE_URL selects Postgres; otherwise an embedded SQLite file.
	driver, dsn := "postgres", os.Getenv("DATABASE_URL")
	if dsn == "" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "lumina_support.db"
		}
		driver, dsn = "sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000"
		log.Printf("[main] DATABASE_URL not set, using sqlite at %s", path)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping error: %v", err)
	}

	if err := chat.InitSchema(db); err != nil {
		log.Fatalf("db schema error: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// --- Chat module wiring ---
	repo := chat.NewRepo(db)
	gateway := ai.NewOpenAIClient()
	svc := chat.NewService(repo, gateway)
	handler := chat.NewHandler(svc)

	chat.RegisterRoutes(r, handler)

	// --- health ---
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Lumina Support API is running"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	log.Printf("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
