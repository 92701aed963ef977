package summary

import (
	"net/http"

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
	l := zap.L().Named("summary.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Monthly(c *gin.Context) {
	resp, err := h.service.Monthly(c.Request.Context(), c.Query("month"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("monthly summary failed",
				zap.String("month", c.Query("month")),
				zap.Error(err),
			)
		}
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}
