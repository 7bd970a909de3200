package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/engine"
	"github.com/ayusharyakashyap/InvestShield/internal/extract"
	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// Handler exposes the scoring engine over HTTP.
type Handler struct {
	engine    *engine.Engine
	extractor *extract.Extractor
	trust     *extract.TrustList
	logger    *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(eng *engine.Engine, extractor *extract.Extractor, trust *extract.TrustList, logger *zap.Logger) *Handler {
	return &Handler{
		engine:    eng,
		extractor: extractor,
		trust:     trust,
		logger:    logger,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/scan/text", h.ScanText)
		api.POST("/scan/url", h.ScanURL)
		api.POST("/scan/batch", h.ScanBatch)
		api.GET("/engine/info", h.EngineInfo)
	}

	r.GET("/health", h.HealthCheck)
}

// ScanTextRequest is a single free-text scan request.
type ScanTextRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source,omitempty"`
}

// ScanURLRequest asks for a page to be fetched, reduced to text, and scored.
type ScanURLRequest struct {
	URL    string `json:"url" binding:"required,url"`
	Source string `json:"source,omitempty"`
}

// BatchItem is one entry of a batch request, carrying either free text or a
// URL to extract first. Nothing is required at binding time: an invalid item
// becomes a per-item error marker in the response instead of failing the
// whole batch.
type BatchItem struct {
	Text   string `json:"text,omitempty"`
	URL    string `json:"url,omitempty"`
	Source string `json:"source,omitempty"`
}

// BatchScanRequest is an ordered sequence of scan items.
type BatchScanRequest struct {
	Items []BatchItem `json:"items" binding:"required,min=1"`
}

// BatchItemResult is one slot of the batch response: an assessment or an
// error marker, never both.
type BatchItemResult struct {
	Index      int                    `json:"index"`
	Assessment *models.RiskAssessment `json:"assessment,omitempty"`
	Error      string                 `json:"error,omitempty"`
	ErrorType  string                 `json:"error_type,omitempty"`
}

// ScanText scores a single piece of content.
func (h *Handler) ScanText(c *gin.Context) {
	var req ScanTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment, err := h.engine.Score(c.Request.Context(), models.ContentSubmission{
		Text:   req.Text,
		Source: submissionSource(req.Source),
	})
	if err != nil {
		h.renderEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// ScanURL extracts page text and scores it.
func (h *Handler) ScanURL(c *gin.Context) {
	var req ScanURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.extractor.TextFromURL(c.Request.Context(), req.URL)
	if err != nil {
		h.logger.Warn("Page extraction failed", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to extract text from url"})
		return
	}

	assessment, err := h.engine.Score(c.Request.Context(), models.ContentSubmission{
		Text:      text,
		Source:    submissionSource(req.Source),
		OriginURL: req.URL,
	})
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	h.applyDomainTrust(assessment, req.URL)

	c.JSON(http.StatusOK, assessment)
}

// ScanBatch scores an ordered sequence of items. Per-item failures occupy
// their slots; the batch itself always returns 200 with one result per input.
func (h *Handler) ScanBatch(c *gin.Context) {
	var req BatchScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subs := make([]models.ContentSubmission, len(req.Items))
	extractErrs := make([]error, len(req.Items))
	for i, item := range req.Items {
		subs[i] = models.ContentSubmission{
			Text:      item.Text,
			Source:    submissionSource(item.Source),
			OriginURL: item.URL,
		}
		if item.Text == "" && item.URL != "" {
			text, err := h.extractor.TextFromURL(c.Request.Context(), item.URL)
			if err != nil {
				h.logger.Warn("Page extraction failed", zap.String("url", item.URL), zap.Error(err))
				extractErrs[i] = err
				continue
			}
			subs[i].Text = text
		}
	}

	batch := h.engine.ScoreBatch(c.Request.Context(), subs)

	results := make([]BatchItemResult, len(batch))
	for i, r := range batch {
		if extractErrs[i] != nil {
			results[i] = BatchItemResult{Index: i, Error: "failed to extract text from url", ErrorType: "extraction_failed"}
			continue
		}
		results[i] = BatchItemResult{Index: r.Index, Assessment: r.Assessment}
		if r.Err != nil {
			results[i].Error = r.Err.Error()
			results[i].ErrorType = errorType(r.Err)
			continue
		}
		h.applyDomainTrust(r.Assessment, req.Items[i].URL)
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}

// EngineInfo reports the loaded rule bank and model configuration.
func (h *Handler) EngineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Describe())
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"models": h.engine.Describe().Models,
	})
}

func (h *Handler) renderEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_input"})
	case errors.Is(err, engine.ErrModelUnavailable):
		h.logger.Error("Scoring failed: no model voted", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "error_type": "model_unavailable"})
	case errors.Is(err, engine.ErrAnalysisTimeout):
		h.logger.Warn("Scoring timed out", zap.Error(err))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error(), "error_type": "analysis_timeout"})
	default:
		h.logger.Error("Scoring failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "error_type": "internal"})
	}
}

// applyDomainTrust discounts an assessment for content fetched from a trusted
// domain: regulators and exchanges quote scam wording when warning about it.
// The keyword and category findings stay untouched; only the score, the
// suspicious verdict, and the explanation change.
func (h *Handler) applyDomainTrust(a *models.RiskAssessment, originURL string) {
	if originURL == "" || !h.trust.Trusted(originURL) {
		return
	}

	a.RiskScore = math.Max(0, a.RiskScore-extract.TrustReduction)
	a.IsSuspicious = a.RiskScore >= h.engine.Describe().SuspiciousThreshold
	a.Explanation += fmt.Sprintf(" The content was fetched from a trusted domain (%s); the risk score was reduced by %.0f points.",
		originURL, extract.TrustReduction)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, engine.ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, engine.ErrAnalysisTimeout):
		return "analysis_timeout"
	default:
		return "internal"
	}
}

func submissionSource(s string) models.ContentSource {
	switch models.ContentSource(s) {
	case models.SourceWhatsApp, models.SourceTelegram, models.SourceWeb:
		return models.ContentSource(s)
	default:
		return models.SourceUnknown
	}
}
