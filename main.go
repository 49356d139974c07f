package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"strings"
	"time"

	"pricescout/cache"
	"pricescout/config"
	"pricescout/database"
	"pricescout/handlers"
	"pricescout/middleware"
	"pricescout/repository"
	"pricescout/scheduler"
	"pricescout/scraper"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// enablePersistence gates the Postgres search-history layer. The code path is
// complete but off until a deployment actually wants history.
const enablePersistence = false

// Metrics struct for basic monitoring
type Metrics struct {
	Timestamp     time.Time `json:"timestamp"`
	Uptime        string    `json:"uptime"`
	Goroutines    int       `json:"goroutines"`
	MemoryUsage   string    `json:"memory_usage"`
	CachedQueries int       `json:"cached_queries"`
	Stores        []string  `json:"stores"`
}

var startTime = time.Now()

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	apiCfg := config.LoadAPIConfig()
	browserCfg := config.LoadBrowserConfig()

	// Optional search-history persistence
	var searchRepo *repository.SearchRepository
	if enablePersistence {
		if err := database.InitDatabase(apiCfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer database.CloseDatabase()

		if err := database.CreateTables(); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		searchRepo = repository.NewSearchRepository()
	}

	// Result cache with a fixed TTL per entry
	results, err := cache.NewResultCache(apiCfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to create result cache: %v", err)
	}

	// Browser sessions and per-store extractors
	sessions := scraper.NewSessionManager(browserCfg)
	extractors := scraper.DefaultExtractors()
	orchestrator := scraper.NewOrchestrator(sessions, extractors, results, apiCfg.FetchTimeout)

	// Periodic eviction of expired cache entries
	sweeper := scheduler.NewCacheSweeper(results)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize handlers
	h := handlers.NewHandlers(orchestrator, searchRepo)

	// Setup router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(apiCfg.RateLimitRPS))

	// Health and monitoring endpoints
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/metrics", metricsHandler(orchestrator, results)).Methods("GET")

	// Search endpoint, plus the same under the versioned prefix
	r.HandleFunc("/search", h.Search).Methods("POST")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/search", h.Search).Methods("POST")
	apiV1.HandleFunc("/stores", h.Stores).Methods("GET")
	apiV1.HandleFunc("/history", h.History).Methods("GET")

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(apiCfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	log.Printf("Server starting on port %s", apiCfg.Port)
	log.Printf("API endpoints:")
	log.Printf("   GET  /health - Health check")
	log.Printf("   GET  /metrics - System metrics")
	log.Printf("   POST /search - Live price comparison")
	log.Printf("   POST /api/v1/search - Live price comparison")
	log.Printf("   GET  /api/v1/stores - Configured stores")
	log.Printf("   GET  /api/v1/history - Recent searches")

	// Start server
	log.Fatal(http.ListenAndServe(":"+apiCfg.Port, c.Handler(r)))
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"service":   "pricescout",
		"status":    "healthy",
		"timestamp": time.Now(),
		"version":   "1.0.0",
		"endpoints": map[string]string{
			"health":  "/health",
			"metrics": "/metrics",
			"search":  "/search",
			"api_v1":  "/api/v1",
		},
	}
	writeJSON(w, http.StatusOK, response)
}

func metricsHandler(orchestrator *scraper.Orchestrator, results *cache.ResultCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		metricsData := Metrics{
			Timestamp:     time.Now(),
			Uptime:        time.Since(startTime).String(),
			Goroutines:    runtime.NumGoroutine(),
			MemoryUsage:   fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			CachedQueries: results.Len(),
			Stores:        orchestrator.StoreNames(),
		}

		writeJSON(w, http.StatusOK, metricsData)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
