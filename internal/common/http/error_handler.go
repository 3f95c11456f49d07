package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/ardanovsky/todo-service/internal/common/errors"
	"github.com/ardanovsky/todo-service/internal/common/httpmetrics"
	"github.com/ardanovsky/todo-service/internal/common/logger"
	"github.com/ardanovsky/todo-service/internal/observability/metrics"
)

// HandleError maps any error to its contractual HTTP response. Domain errors
// carry their own status; anything unrecognized is logged and answered with
// 500 so no store or crypto fault escapes unhandled.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	if err == nil {
		return
	}

	ctx := r.Context()

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		status := domainErr.HTTPStatus()

		if log.ShouldLog(logger.DEBUG) {
			log.WithFields(ctx, logger.Fields{
				"error_code": domainErr.Code(),
				"category":   string(domainErr.Category()),
				"status":     status,
			}).Debugf("domain error: %s", domainErr.Error())
		}

		metrics.DomainErrorsTotal.WithLabelValues(
			string(domainErr.Category()),
			domainErr.Code(),
			strconv.Itoa(status),
		).Inc()
		metrics.HTTPErrorsTotal.WithLabelValues(
			strconv.Itoa(status),
			httpmetrics.NormalizePath(r.URL.Path),
			r.Method,
		).Inc()

		WriteError(w, status, domainErr.Message())
		return
	}

	log.WithFields(ctx, logger.Fields{
		"error": err.Error(),
	}).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, "internal server error")
}
