package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gorilla/mux"

	"github.com/licitaIA/tender-analysis-service/internal/auth"
	"github.com/licitaIA/tender-analysis-service/internal/db"
	"github.com/licitaIA/tender-analysis-service/internal/models"
	"github.com/licitaIA/tender-analysis-service/internal/pdf"
	"github.com/licitaIA/tender-analysis-service/internal/storage"
)

const (
	// MaxUploadSize caps each uploaded pliego PDF
	MaxUploadSize = 20 * 1024 * 1024 // 20MB
	Version       = "1.0.0"
)

// Handler handles HTTP requests for tender analysis
type Handler struct {
	config    *models.Config
	extractor *pdf.Extractor
}

// NewHandler creates a new API handler
func NewHandler(config *models.Config, extractor *pdf.Extractor) *Handler {
	return &Handler{
		config:    config,
		extractor: extractor,
	}
}

// SetupRoutes configures the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	// Auth
	router.HandleFunc("/api/login", auth.LoginHandler).Methods("POST")

	// Tender analysis
	router.HandleFunc("/api/analyze-tender", h.AnalyzeTender).Methods("POST")
	router.HandleFunc("/api/analyses", h.GetAnalyses).Methods("GET")
	router.HandleFunc("/api/analysis/chat", h.Chat).Methods("POST")
	router.HandleFunc("/api/analysis/{id}", h.GetAnalysis).Methods("GET")
	router.HandleFunc("/api/analysis/{id}", h.DeleteAnalysis).Methods("DELETE")

	// Calculators
	router.HandleFunc("/api/simulate", h.Simulate).Methods("POST")
	router.HandleFunc("/api/score", h.Score).Methods("POST")

	// Health check
	router.HandleFunc("/health", h.Health).Methods("GET")

	return router
}

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Memory    MemoryStats       `json:"memory"`
	Database  ServiceStatus     `json:"database"`
	Storage   ServiceStatus     `json:"storage"`
	AI        map[string]string `json:"ai"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus represents the status of a service dependency
type ServiceStatus struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

var startTime = time.Now()

// Health endpoint - enhanced for monitoring
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			Total:     fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/1024/1024),
			System:    fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		},
		Database: h.checkDatabase(),
		Storage:  h.checkStorage(),
		AI: map[string]string{
			"defaultProvider": h.config.AI.DefaultProvider,
			"geminiModel":     h.config.AI.Gemini.Model,
			"openaiModel":     h.config.AI.OpenAI.Model,
			"ollamaModel":     h.config.AI.Ollama.Model,
		},
	}

	// Analysis works without DB or storage, so they only degrade the status
	if !response.Database.Available || !response.Storage.Available {
		response.Status = "degraded"
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) checkDatabase() ServiceStatus {
	if db.Pool == nil {
		return ServiceStatus{
			Available: false,
			Error:     "not configured",
		}
	}
	return ServiceStatus{Available: true}
}

func (h *Handler) checkStorage() ServiceStatus {
	if storage.Client == nil {
		return ServiceStatus{
			Available: false,
			Error:     "not configured",
		}
	}
	return ServiceStatus{Available: true}
}

func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
