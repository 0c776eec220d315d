package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/licitaIA/tender-analysis-service/internal/ai"
	"github.com/licitaIA/tender-analysis-service/internal/auth"
	"github.com/licitaIA/tender-analysis-service/internal/calc"
	"github.com/licitaIA/tender-analysis-service/internal/db"
	"github.com/licitaIA/tender-analysis-service/internal/models"
	"github.com/licitaIA/tender-analysis-service/internal/pdf"
	"github.com/licitaIA/tender-analysis-service/internal/storage"
)

// AnalyzeResponse is returned by POST /api/analyze-tender.
type AnalyzeResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	AnalysisID string `json:"analysisId,omitempty"`

	Report   *models.ReportData         `json:"report,omitempty"`
	Settings models.CompetitionSettings `json:"settings"`
	Offer    models.Offer               `json:"offer"`

	AutomaticCriteria  []calc.AutomaticCriterion  `json:"automaticCriteria"`
	SubjectiveCriteria []calc.SubjectiveCriterion `json:"subjectiveCriteria"`

	Confidence    float64 `json:"confidence"`
	Provider      string  `json:"provider,omitempty"`
	AIDuration    float64 `json:"aiDuration"`
	TotalDuration float64 `json:"totalDuration"`
}

// AnalyzeTender accepts the two pliego PDFs as multipart fields "pcap" and
// "ppt", extracts their text, runs the LLM analysis and returns the report
// with the seeded simulation inputs. DB and storage are optional: without
// them the analysis still runs, it just isn't persisted.
func (h *Handler) AnalyzeTender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	start := time.Now()

	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized: "+err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 2*MaxUploadSize+1024*1024)
	if err := r.ParseMultipartForm(2 * MaxUploadSize); err != nil {
		h.sendError(w, http.StatusBadRequest, "Files too large or invalid form data")
		return
	}

	pcapData, err := h.readUpload(r, "pcap")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	pptData, err := h.readUpload(r, "ppt")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	pcapText, err := h.extractor.ExtractText(pcapData)
	if err != nil {
		h.sendError(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to extract PCAP text: %v", err))
		return
	}
	pptText, err := h.extractor.ExtractText(pptData)
	if err != nil {
		h.sendError(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to extract PPT text: %v", err))
		return
	}

	provider, err := ai.NewProvider(ctx, h.config.AI, r.FormValue("aiProvider"), r.FormValue("model"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	analyzer := ai.NewAnalyzer(provider, h.config.DefaultSettings())
	result, aiDuration, err := analyzer.Analyze(ctx, pcapText, pptText)

	totalDuration := time.Since(start).Seconds()

	if err != nil {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AnalyzeResponse{
			Success:       false,
			Error:         err.Error(),
			Provider:      provider.Name(),
			TotalDuration: totalDuration,
		})
		return
	}

	autoCriteria, subjectiveCriteria := calc.CriteriaFromReport(result.Report.CriteriosAdjudicacion)

	// Upload source documents (if storage configured)
	var pcapObject, pptObject string
	if storage.Client != nil {
		if pcapObject, err = storage.UploadTenderDocument(ctx, claims.EmpresaAlias, "pcap", pcapData); err != nil {
			log.Printf("Warning: failed to upload PCAP to MinIO: %v", err)
		}
		if pptObject, err = storage.UploadTenderDocument(ctx, claims.EmpresaAlias, "ppt", pptData); err != nil {
			log.Printf("Warning: failed to upload PPT to MinIO: %v", err)
		}
	}

	// Persist (if database configured)
	var analysisID string
	if db.Pool != nil {
		reportJSON, err := json.Marshal(result.Report)
		if err == nil {
			budget, _ := calc.ParseCurrencyString(result.Report.AnalisisEconomico.PresupuestoBaseLicitacion)
			analysis := &db.Analysis{
				Titulo:          truncate(result.Report.ObjetoLicitacion.Descripcion, 200),
				Report:          reportJSON,
				PresupuestoBase: budget,
				Confidence:      result.Confidence,
				Provider:        provider.Name(),
				DurationSeconds: aiDuration,
				PcapObject:      pcapObject,
				PptObject:       pptObject,
			}
			if err := db.SaveAnalysis(ctx, claims.EmpresaAlias, analysis); err != nil {
				log.Printf("Warning: failed to save analysis: %v", err)
			} else {
				analysisID = analysis.ID
			}
		}
	}

	json.NewEncoder(w).Encode(AnalyzeResponse{
		Success:            true,
		AnalysisID:         analysisID,
		Report:             result.Report,
		Settings:           result.Settings,
		Offer:              result.Offer,
		AutomaticCriteria:  autoCriteria,
		SubjectiveCriteria: subjectiveCriteria,
		Confidence:         result.Confidence,
		Provider:           provider.Name(),
		AIDuration:         aiDuration,
		TotalDuration:      time.Since(start).Seconds(),
	})
}

// readUpload pulls one PDF out of the multipart form and validates it.
func (h *Handler) readUpload(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s file (use multipart field %q)", field, field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file", field)
	}
	if int64(len(data)) > MaxUploadSize {
		return nil, fmt.Errorf("%s file exceeds the %dMB limit", field, MaxUploadSize/1024/1024)
	}
	if !pdf.IsPDF(data) {
		return nil, fmt.Errorf("%s file is not a PDF", field)
	}
	return data, nil
}

// GetAnalyses lists the tenant's saved analyses
func (h *Handler) GetAnalyses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	analyses, err := db.ListAnalyses(ctx, claims.EmpresaAlias, 100)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list analyses: %v", err))
		return
	}
	if analyses == nil {
		analyses = []db.AnalysisSummary{}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"analyses": analyses,
		"count":    len(analyses),
	})
}

// AnalysisDetailResponse adds presigned document URLs to a stored analysis.
type AnalysisDetailResponse struct {
	*db.Analysis
	PcapURL string `json:"pcapUrl,omitempty"`
	PptURL  string `json:"pptUrl,omitempty"`
}

// GetAnalysis returns one analysis with its full report
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	id := mux.Vars(r)["id"]
	analysis, err := db.GetAnalysis(ctx, claims.EmpresaAlias, id)
	if err != nil {
		h.sendError(w, http.StatusNotFound, "analysis not found")
		return
	}

	response := AnalysisDetailResponse{Analysis: analysis}
	if storage.Client != nil {
		if analysis.PcapObject != "" {
			if url, err := storage.GetPresignedURL(ctx, analysis.PcapObject); err == nil {
				response.PcapURL = url
			}
		}
		if analysis.PptObject != "" {
			if url, err := storage.GetPresignedURL(ctx, analysis.PptObject); err == nil {
				response.PptURL = url
			}
		}
	}

	json.NewEncoder(w).Encode(response)
}

// DeleteAnalysis removes an analysis and its stored documents
func (h *Handler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	id := mux.Vars(r)["id"]
	analysis, err := db.GetAnalysis(ctx, claims.EmpresaAlias, id)
	if err != nil {
		h.sendError(w, http.StatusNotFound, "analysis not found")
		return
	}

	if err := db.DeleteAnalysis(ctx, claims.EmpresaAlias, id); err != nil {
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete analysis: %v", err))
		return
	}

	// Best-effort cleanup of the stored documents
	if storage.Client != nil {
		for _, object := range []string{analysis.PcapObject, analysis.PptObject} {
			if object == "" {
				continue
			}
			if err := storage.DeleteDocument(ctx, object); err != nil {
				log.Printf("Warning: failed to delete stored document %s: %v", object, err)
			}
		}
	}

	json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}

// ChatRequest is a follow-up question over an analyzed report.
type ChatRequest struct {
	Report   *models.ReportData `json:"report"`
	History  []ai.ChatMessage   `json:"history"`
	Question string             `json:"question"`
	Provider string             `json:"aiProvider,omitempty"`
	Model    string             `json:"model,omitempty"`
}

// Chat answers questions about an analyzed report. Stateless: the client
// sends the report and conversation history each turn.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	if _, err := auth.GetClaimsFromContext(ctx); err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Report == nil || req.Question == "" {
		h.sendError(w, http.StatusBadRequest, "report and question are required")
		return
	}

	provider, err := ai.NewProvider(ctx, h.config.AI, req.Provider, req.Model)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	analyzer := ai.NewAnalyzer(provider, h.config.DefaultSettings())
	answer, err := analyzer.Chat(ctx, req.Report, req.History, req.Question)
	if err != nil {
		h.sendError(w, http.StatusBadGateway, err.Error())
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
