package leave

import (
	"net/http"

	"github.com/shkhalid/maxerp/internal/middleware"
	"github.com/shkhalid/maxerp/internal/shared/apperror"
	"github.com/shkhalid/maxerp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Apply(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	h.logger.Debug("http apply leave", zap.String("user_id", userID))

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http apply leave validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, "Validation failed", mapped.Message)
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Leave request submitted successfully", resp)
}

func (h *Handler) Pending(c *gin.Context) {
	resp, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}

func (h *Handler) Decide(c *gin.Context) {
	id := c.Param("id")
	approverID := c.GetString(middleware.ContextUserID)

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http decide leave validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, "Validation failed", mapped.Message)
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), approverID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	message := "Leave request approved successfully"
	if req.Action == ActionReject {
		message = "Leave request rejected successfully"
	}
	response.Success(c, http.StatusOK, message, resp)
}

func (h *Handler) MyRequests(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	resp, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}

func (h *Handler) OnLeaveToday(c *gin.Context) {
	resp, err := h.service.OnLeaveCount(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}
