// internal/api/handler/settlement.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vestflow-engine/internal/api/types"
	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"
	"vestflow-engine/internal/service"
	"vestflow-engine/internal/util" // For custom errors
)

// DefaultTimeout bounds request handling time at the router level.
// Settlement runs iterate every eligible position, so this is generous.
const DefaultTimeout = 120 * time.Second

// SettlementHandler handles HTTP requests for triggering settlement runs
// and reading run/earnings history.
type SettlementHandler struct {
	settlementService service.SettlementService
	reportService     service.ReportService
	logger            *slog.Logger
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementSvc service.SettlementService, reportSvc service.ReportService, logger *slog.Logger) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementSvc,
		reportService:     reportSvc,
		logger:            logger,
	}
}

// Helper function to send JSON responses.
func (h *SettlementHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *SettlementHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error() // Use the error message directly for invalid input
	case util.IsError(err, util.ErrAlreadyRun):
		statusCode = http.StatusConflict
		message = "Settlement already completed for today"
	case util.IsError(err, util.ErrForcedRunThrottled):
		statusCode = http.StatusTooManyRequests
		message = "Forced run attempted too soon after the previous one"
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrWalletNotFound), util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// parsePagination reads limit/offset query parameters with defaults.
func parsePagination(r *http.Request) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10 // Default limit
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}
	return limit, offset
}

// RunSettlementRequest represents the request body for triggering a run.
type RunSettlementRequest struct {
	Forced bool `json:"forced"`
}

// RunSettlement handles the settlement trigger request.
// POST /settlement/run
func (h *SettlementHandler) RunSettlement(w http.ResponseWriter, r *http.Request) {
	var req RunSettlementRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
	}

	summary, err := h.settlementService.RunSettlement(r.Context(), req.Forced)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Settlement run completed",
		"forced":  req.Forced,
		"summary": summary,
	})
}

// GetRunStatus handles the idempotency query for a calendar date.
// GET /settlement/status?date=2006-01-02 (defaults to today)
func (h *SettlementHandler) GetRunStatus(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		date = parsed
	}

	hasRun, err := h.settlementService.HasRunForDate(r.Context(), date)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"date":      domain.DayStartUTC(date).Format("2006-01-02"),
		"completed": hasRun,
	})
}

// GetRunLogs handles the run history request.
// GET /settlement/runs?limit=&offset=
func (h *SettlementHandler) GetRunLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	logs, totalCount, err := h.reportService.GetRunLogs(r.Context(), limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.SettlementRunLog]{
		Data:       logs,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// GetEarnings handles the earnings report request.
// GET /earnings?type=&from=&to=&user_id=&limit=&offset=
func (h *SettlementHandler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var filter repository.EarningFilter
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		earningType := domain.EarningType(typeStr)
		if earningType != domain.EarningTypeAccrual && earningType != domain.EarningTypeCommission {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		filter.Type = &earningType
	}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		filter.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		// Make the range inclusive of the 'to' day.
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	if userIDStr := r.URL.Query().Get("user_id"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		filter.UserID = &userID
	}

	earnings, totalCount, err := h.reportService.GetEarnings(r.Context(), filter, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Earning]{
		Data:       earnings,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// GetUserWallet handles the wallet lookup request.
// GET /users/{userID}/wallet
func (h *SettlementHandler) GetUserWallet(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	wallet, err := h.reportService.GetWalletByUserID(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":          wallet.UserID,
		"balance":          wallet.Balance,
		"deposit_balance":  wallet.DepositBalance,
		"total_accrued":    wallet.TotalAccrued,
		"total_commission": wallet.TotalCommission,
	})
}
