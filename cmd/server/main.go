package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/licitaIA/tender-analysis-service/api"
	"github.com/licitaIA/tender-analysis-service/internal/auth"
	"github.com/licitaIA/tender-analysis-service/internal/db"
	"github.com/licitaIA/tender-analysis-service/internal/models"
	"github.com/licitaIA/tender-analysis-service/internal/pdf"
	"github.com/licitaIA/tender-analysis-service/internal/storage"
)

func main() {
	// Initialize JWT
	if err := auth.Init(); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	log.Println("JWT authentication initialized")

	// Initialize database connection pool
	if err := db.Init(); err != nil {
		log.Printf("Warning: Database not available: %v", err)
		log.Println("Running in analysis-only mode (no persistence)")
	} else {
		defer db.Close()
		log.Println("Database connection pool initialized")
	}

	// Initialize MinIO storage
	if err := storage.Init(); err != nil {
		log.Printf("Warning: MinIO storage not available: %v", err)
		log.Println("Uploaded pliegos will not be stored")
	} else {
		log.Println("MinIO storage initialized")
	}

	// Load configuration
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// PDF text extractor
	extractor, err := pdf.NewExtractor()
	if err != nil {
		log.Fatalf("Failed to initialize PDF extractor: %v", err)
	}

	// Create API handler
	handler := api.NewHandler(config, extractor)
	router := handler.SetupRoutes()

	// Wrap router with JWT middleware (skips /health and /api/login)
	protectedRouter := auth.JWTMiddleware(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	log.Printf("Starting Tender Analysis Service v%s on %s", api.Version, addr)
	log.Printf("Default AI Provider: %s", config.AI.DefaultProvider)
	log.Printf("Database: %v", db.Pool != nil)
	log.Printf("Storage: %v", storage.Client != nil)
	log.Printf("Endpoints:")
	log.Printf("  POST http://%s/api/login           - Authenticate", addr)
	log.Printf("  POST http://%s/api/analyze-tender  - Analyze PCAP + PPT (requires JWT)", addr)
	log.Printf("  GET  http://%s/api/analyses        - List saved analyses (requires JWT)", addr)
	log.Printf("  GET  http://%s/api/analysis/{id}   - Get analysis (requires JWT)", addr)
	log.Printf("  DELETE http://%s/api/analysis/{id} - Delete analysis (requires JWT)", addr)
	log.Printf("  POST http://%s/api/analysis/chat   - Ask about a report (requires JWT)", addr)
	log.Printf("  POST http://%s/api/simulate        - Cost + competition simulation (requires JWT)", addr)
	log.Printf("  POST http://%s/api/score           - Scoring projection (requires JWT)", addr)
	log.Printf("  GET  http://%s/health              - Health check", addr)

	if err := http.ListenAndServe(addr, protectedRouter); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func loadConfig(path string) (*models.Config, error) {
	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config models.Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables if present
	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &config.Port)
	}
	if host := os.Getenv("HOST"); host != "" {
		config.Host = host
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.AI.OpenAI.APIKey = apiKey
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.AI.Gemini.APIKey = apiKey
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.AI.Ollama.BaseURL = baseURL
	}
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		config.AI.DefaultProvider = provider
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.AI.OpenAI.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.AI.OpenAI.Model = model
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.AI.Gemini.Model = model
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		config.AI.Ollama.Model = model
	}

	return &config, nil
}
