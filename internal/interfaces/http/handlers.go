package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/gov-travel-expense/internal/application/service"
)

// Version is reported by the health check
const Version = "1.0.0"

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker func(ctx context.Context) error

// Handlers contains all HTTP request handlers
type Handlers struct {
	calculation service.CalculationService
	documents   service.DocumentService
	profiles    service.ProfileService
	drafts      service.DraftService
	distance    service.DistanceService
	health      HealthChecker
	logger      Logger
}

// Services groups the application services the handlers call
type Services struct {
	Calculation service.CalculationService
	Documents   service.DocumentService
	Profiles    service.ProfileService
	Drafts      service.DraftService
	Distance    service.DistanceService
	Health      HealthChecker
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, logger Logger) *Handlers {
	return &Handlers{
		calculation: services.Calculation,
		documents:   services.Documents,
		profiles:    services.Profiles,
		drafts:      services.Drafts,
		distance:    services.Distance,
		health:      services.Health,
		logger:      logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	}
	status := http.StatusOK
	if h.health != nil {
		resp.Database = "ok"
		if err := h.health(c.Request.Context()); err != nil {
			h.logger.Error("Health check failed", "error", err)
			resp.Status = "unhealthy"
			resp.Database = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, resp)
}

// Calculate handles POST /api/v1/claims/calculate
func (h *Handlers) Calculate(c *gin.Context) {
	var input service.ClaimInput
	if !h.bind(c, &input) {
		return
	}

	result, err := h.calculation.Calculate(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: newCalculationResponse(result)})
}

// GeneratePDF handles POST /api/v1/claims/documents/pdf
func (h *Handlers) GeneratePDF(c *gin.Context) {
	h.generate(c, service.FormatPDF)
}

// GenerateWorkbook handles POST /api/v1/claims/documents/xlsx
func (h *Handlers) GenerateWorkbook(c *gin.Context) {
	h.generate(c, service.FormatXLSX)
}

func (h *Handlers) generate(c *gin.Context, format string) {
	var input service.ClaimInput
	if !h.bind(c, &input) {
		return
	}

	doc, err := h.documents.Generate(c.Request.Context(), &input, format)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Type", doc.ContentType)
	c.Header("X-Grand-Total", doc.GrandTotal)
	c.FileAttachment(doc.Path, doc.FileName)
}

// Preview handles POST /api/v1/claims/documents/preview?page=N
func (h *Handlers) Preview(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.reject(c, http.StatusBadRequest, CodeInvalidRequest, "หมายเลขหน้าไม่ถูกต้อง")
			return
		}
		page = n
	}

	var input service.ClaimInput
	if !h.bind(c, &input) {
		return
	}

	png, err := h.documents.Preview(c.Request.Context(), &input, page)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// EstimateTaxi handles POST /api/v1/transport/taxi-estimate
func (h *Handlers) EstimateTaxi(c *gin.Context) {
	var input service.TransportInput
	if !h.bind(c, &input) {
		return
	}

	quote, err := h.calculation.EstimateTaxi(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: newTransportQuoteResponse(quote)})
}

// RoadDistance handles GET /api/v1/distance?origin=&destination=
func (h *Handlers) RoadDistance(c *gin.Context) {
	route, err := h.distance.RoadDistance(c.Request.Context(), c.Query("origin"), c.Query("destination"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: route})
}

// Rates handles GET /api/v1/rates
func (h *Handlers) Rates(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Data: newRatesResponse(h.calculation.Definition())})
}

// ListProfiles handles GET /api/v1/profiles
func (h *Handlers) ListProfiles(c *gin.Context) {
	limit, ok := h.limit(c, service.DefaultProfileListLimit)
	if !ok {
		return
	}

	profiles, err := h.profiles.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: profiles})
}

// GetProfile handles GET /api/v1/profiles/:name
func (h *Handlers) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: profile})
}

// SaveProfile handles POST /api/v1/profiles
func (h *Handlers) SaveProfile(c *gin.Context) {
	var input service.TravelerInput
	if !h.bind(c, &input) {
		return
	}

	profile, err := h.profiles.Save(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: profile})
}

// DeleteProfile handles DELETE /api/v1/profiles/:name
func (h *Handlers) DeleteProfile(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), c.Param("name")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// ListDrafts handles GET /api/v1/drafts
func (h *Handlers) ListDrafts(c *gin.Context) {
	limit, ok := h.limit(c, service.DefaultDraftListLimit)
	if !ok {
		return
	}

	drafts, err := h.drafts.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: drafts})
}

// SaveDraft handles POST /api/v1/drafts
func (h *Handlers) SaveDraft(c *gin.Context) {
	var req SaveDraftRequest
	if !h.bind(c, &req) {
		return
	}

	draft, err := h.drafts.Save(c.Request.Context(), req.Name, req.Claim)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: draft})
}

// GetDraft handles GET /api/v1/drafts/:id
func (h *Handlers) GetDraft(c *gin.Context) {
	draft, claim, err := h.drafts.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	draft.Payload = nil
	c.JSON(http.StatusOK, Response{Success: true, Data: DraftResponse{Draft: draft, Claim: claim}})
}

// DeleteDraft handles DELETE /api/v1/drafts/:id
func (h *Handlers) DeleteDraft(c *gin.Context) {
	if err := h.drafts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// bind decodes the JSON body and answers 400 when it is malformed
func (h *Handlers) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Info("Rejected request body", "path", c.FullPath(), "error", err)
		h.reject(c, http.StatusBadRequest, CodeInvalidRequest, "รูปแบบข้อมูลไม่ถูกต้อง: "+err.Error())
		return false
	}
	return true
}

func (h *Handlers) limit(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		h.reject(c, http.StatusBadRequest, CodeInvalidRequest, "ค่า limit ไม่ถูกต้อง")
		return 0, false
	}
	return n, true
}

// fail translates err and writes the error envelope
func (h *Handlers) fail(c *gin.Context, err error) {
	apiErr := translateError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	h.reject(c, apiErr.Status, apiErr.Code, apiErr.Message)
}

func (h *Handlers) reject(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Error: message, Code: code})
}
