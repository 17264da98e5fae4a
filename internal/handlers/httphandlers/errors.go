package httphandlers

import (
	"errors"
	"net/http"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/estate-chain/marketplace-router/internal/repositories/contracts"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/estate-chain/marketplace-router/internal/resources/estate/marketplace"
	"github.com/gin-gonic/gin"
)

var errBadRequest = errors.New("bad request")

// statusFor maps domain and contract errors to http status codes. Order matters,
// not-found is wrapped around the revert that caused it
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, lib.ErrInvalidAmount),
		errors.Is(err, marketplace.ErrInvalidPropertyID),
		errors.Is(err, marketplace.ErrInvalidRating),
		errors.Is(err, marketplace.ErrZeroAddress):
		return http.StatusBadRequest
	case errors.Is(err, estate.ErrPropertyNotFound),
		errors.Is(err, estate.ErrWorkflowNotFound):
		return http.StatusNotFound
	case errors.Is(err, estate.ErrWorkflowNotResume),
		errors.Is(err, contracts.ErrReverted):
		return http.StatusConflict
	case errors.Is(err, contracts.ErrRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contracts.ErrParse):
		return http.StatusBadGateway
	case errors.Is(err, contracts.ErrProvider):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *HTTPHandler) writeError(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status >= 500 {
		h.log.Warnf("%s %s: %s", ctx.Request.Method, ctx.Request.URL.Path, err)
	}
	ctx.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(err error) error {
	return lib.WrapError(errBadRequest, err)
}
