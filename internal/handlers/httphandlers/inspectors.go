package httphandlers

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) GetInspector(ctx *gin.Context) {
	addr, err := parseAddr(ctx.Param("addr"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	inspector, err := h.service.GetInspector(ctx, addr)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InspectorDTO{
		Address:               inspector.Address.Hex(),
		IsRegistered:          inspector.IsRegistered,
		SuccessfulInspections: bigString(inspector.SuccessfulInspections),
		TotalInspections:      bigString(inspector.TotalInspections),
	})
}

func (h *HTTPHandler) AddInspector(ctx *gin.Context) {
	var req AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	h.respondTx(ctx)(h.service.AddInspector(ctx, common.HexToAddress(req.Address)))
}

func (h *HTTPHandler) RemoveInspector(ctx *gin.Context) {
	addr, err := parseAddr(ctx.Param("addr"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.respondTx(ctx)(h.service.RemoveInspector(ctx, addr))
}

func (h *HTTPHandler) GetOwner(ctx *gin.Context) {
	owner, err := h.service.Owner(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"owner":  owner.Hex(),
		"wallet": h.service.WalletAddress().Hex(),
	})
}

func (h *HTTPHandler) TransferOwnership(ctx *gin.Context) {
	var req AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	h.respondTx(ctx)(h.service.TransferOwnership(ctx, common.HexToAddress(req.Address)))
}

func parseAddr(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, badRequest(fmt.Errorf("invalid address %q", s))
	}
	return common.HexToAddress(s), nil
}
