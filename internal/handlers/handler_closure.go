package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Musoni/mifosx-sub001/internal/apperrors"
	"github.com/Musoni/mifosx-sub001/internal/core/services"
	"github.com/Musoni/mifosx-sub001/internal/dto"
	"github.com/Musoni/mifosx-sub001/internal/middleware"

	portssvc "github.com/Musoni/mifosx-sub001/internal/core/ports/services"
)

// closureHandler handles HTTP requests related to accounting closures.
type closureHandler struct {
	closureService portssvc.ClosureSvcFacade
}

// newClosureHandler creates a new closureHandler.
func newClosureHandler(cs portssvc.ClosureSvcFacade) *closureHandler {
	return &closureHandler{
		closureService: cs,
	}
}

// registerClosureRoutes registers routes related to closures.
func registerClosureRoutes(rg *gin.RouterGroup, closureService portssvc.ClosureSvcFacade) {
	h := newClosureHandler(closureService)

	closures := rg.Group("/closures")
	{
		closures.POST("", h.createClosure)
		closures.GET("/:id", h.getClosure)
		closures.GET("", h.listClosures)
		closures.PUT("/:id", h.updateClosure)
		closures.DELETE("/:id", h.deleteClosure)
	}
}

// createClosure godoc
// @Summary Close accounting for an office
// @Description Closes accounting for an office as of a date, optionally booking off income and expense into equity and optionally covering the office's whole sub-branch tree
// @Tags closures
// @Accept  json
// @Produce  json
// @Param   closure body dto.CreateClosureRequest true "Closure details"
// @Success 201 {array} dto.ClosureResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Office or equity account not found"
// @Failure 409 {object} map[string]string "Accounting already closed for the office or date"
// @Failure 500 {object} map[string]string "Failed to create closure"
// @Router /closures [post]
func (h *closureHandler) createClosure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClosure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, _ := middleware.GetUserIDFromContext(c)

	logger = logger.With(slog.String("office_id", req.OfficeID), slog.String("closing_date", req.ClosingDate))
	logger.Info("Received request to create closure",
		slog.Bool("book_off_income_and_expense", req.BookOffIncomeAndExpense),
		slog.Bool("include_sub_branches", req.IncludeSubBranches))

	closures, err := h.closureService.CreateClosure(c.Request.Context(), req, creatorUserID)
	if err != nil {
		h.respondCreateError(c, logger, err)
		return
	}

	logger.Info("Closure created successfully", slog.Int("closure_count", len(closures)))
	c.JSON(http.StatusCreated, dto.ToClosureResponses(closures))
}

func (h *closureHandler) respondCreateError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrOfficeNotFound),
		errors.Is(err, services.ErrEquityAccountNotFound):
		logger.Warn("Dependency not found creating closure", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFutureClosingDate),
		errors.Is(err, services.ErrNotEquityAccount),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error creating closure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountingAlreadyClosed),
		errors.Is(err, services.ErrDuplicateClosure),
		errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Closure conflicts with existing closure", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRunningBalanceNotCalculated):
		logger.Error("Ledger running balances not ready", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to create closure in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create closure"})
	}
}

// getClosure godoc
// @Summary Get a closure by ID
// @Description Retrieves a closure and, when income and expense were booked off, its booking
// @Tags closures
// @Produce  json
// @Param   id path string true "Closure ID"
// @Success 200 {object} dto.ClosureDetailResponse
// @Failure 404 {object} map[string]string "Closure not found"
// @Failure 500 {object} map[string]string "Failed to retrieve closure"
// @Router /closures/{id} [get]
func (h *closureHandler) getClosure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closureID := c.Param("id")

	logger = logger.With(slog.String("closure_id", closureID))

	closure, booking, err := h.closureService.GetClosureByID(c.Request.Context(), closureID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Closure not found", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Closure not found"})
		} else {
			logger.Error("Failed to get closure", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve closure"})
		}
		return
	}

	resp := dto.ClosureDetailResponse{ClosureResponse: dto.ToClosureResponse(closure)}
	if booking != nil {
		resp.Booking = &dto.BookingResponse{
			BookingID:     booking.BookingID,
			TransactionID: booking.TransactionID,
			Reversed:      booking.Reversed,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// listClosures godoc
// @Summary List closures for an office
// @Description Retrieves active closures for an office, most recent first, with token based pagination
// @Tags closures
// @Produce  json
// @Param   officeID query string true "Office ID"
// @Param   limit query int false "Maximum closures to return (default 20)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListClosuresResponse
// @Failure 400 {object} map[string]string "Missing office ID or invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list closures"
// @Router /closures [get]
func (h *closureHandler) listClosures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	officeID := c.Query("officeID")
	if officeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "officeID query parameter is required"})
		return
	}

	var params dto.ListClosuresParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListClosures", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.closureService.ListClosures(c.Request.Context(), officeID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list closures", slog.String("office_id", officeID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list closures"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateClosure godoc
// @Summary Update a closure
// @Description Updates mutable closure metadata. Office and closing date are immutable after creation
// @Tags closures
// @Accept  json
// @Produce  json
// @Param   id path string true "Closure ID"
// @Param   closure body dto.UpdateClosureRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Changed fields keyed by name"
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Closure not found"
// @Failure 500 {object} map[string]string "Failed to update closure"
// @Router /closures/{id} [put]
func (h *closureHandler) updateClosure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closureID := c.Param("id")

	var req dto.UpdateClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClosure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, _ := middleware.GetUserIDFromContext(c)
	logger = logger.With(slog.String("closure_id", closureID))

	changes, err := h.closureService.UpdateClosure(c.Request.Context(), closureID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Closure not found for update", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Closure not found"})
		} else {
			logger.Error("Failed to update closure", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update closure"})
		}
		return
	}

	logger.Info("Closure updated successfully")
	c.JSON(http.StatusOK, gin.H{"closureID": closureID, "changes": changes})
}

// deleteClosure godoc
// @Summary Delete a closure
// @Description Soft-deletes a closure and discards its balance snapshots. When reverseBooking is true the income and expense booking is reversed in the journal
// @Tags closures
// @Produce  json
// @Param   id path string true "Closure ID"
// @Param   reverseBooking query bool false "Reverse the income and expense booking (default true)"
// @Success 200 {object} dto.ClosureResponse
// @Failure 400 {object} map[string]string "Invalid reverseBooking value"
// @Failure 404 {object} map[string]string "Closure not found"
// @Failure 409 {object} map[string]string "A later closure exists or the closure is already deleted"
// @Failure 500 {object} map[string]string "Failed to delete closure"
// @Router /closures/{id} [delete]
func (h *closureHandler) deleteClosure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closureID := c.Param("id")

	reverseBooking := true
	if raw := c.Query("reverseBooking"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reverseBooking value: " + raw})
			return
		}
		reverseBooking = parsed
	}

	deleterUserID, _ := middleware.GetUserIDFromContext(c)
	logger = logger.With(slog.String("closure_id", closureID), slog.Bool("reverse_booking", reverseBooking))
	logger.Info("Received request to delete closure")

	closure, err := h.closureService.DeleteClosure(c.Request.Context(), closureID, reverseBooking, deleterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Closure not found for delete", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Closure not found"})
		case errors.Is(err, services.ErrClosureInvalidDelete), errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Closure delete rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete closure", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete closure"})
		}
		return
	}

	logger.Info("Closure deleted successfully")
	c.JSON(http.StatusOK, dto.ToClosureResponse(closure))
}
