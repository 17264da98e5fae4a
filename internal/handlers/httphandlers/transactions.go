package httphandlers

import (
	"net/http"

	"github.com/estate-chain/marketplace-router/internal/resources/estate/marketplace"
	"github.com/gin-gonic/gin"
)

// respondTx writes the outcome of a mined transaction
func (h *HTTPHandler) respondTx(ctx *gin.Context) func(*marketplace.TxResult, error) {
	return func(res *marketplace.TxResult, err error) {
		if err != nil {
			h.writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, mapTx(res))
	}
}
