package httphandlers

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

func (h *HTTPHandler) GetProperties(ctx *gin.Context) {
	properties, err := h.service.ListProperties(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	data := make([]PropertyDTO, 0, len(properties))
	for i := range properties {
		if properties[i].Listing.Owner == (common.Address{}) {
			continue
		}
		data = append(data, mapProperty(&properties[i]))
	}

	if ctx.Query("pending") == "true" {
		data = filterPending(data)
	}

	slices.SortStableFunc(data, func(a, b PropertyDTO) bool {
		return idLess(a.ID, b.ID)
	})

	ctx.JSON(http.StatusOK, data)
}

func (h *HTTPHandler) GetProperty(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	property, err := h.service.GetProperty(ctx, id)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapProperty(property))
}

func (h *HTTPHandler) GetPropertyCounter(ctx *gin.Context) {
	counter, err := h.service.PropertyCounter(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"counter": counter.String()})
}

// CreateProperty lists the property and sets its details. When the details
// transaction fails the listing still exists, the response carries the workflow
// that can be retried
func (h *HTTPHandler) CreateProperty(ctx *gin.Context) {
	var req CreatePropertyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	if !req.ForSale && !req.ForRent {
		h.writeError(ctx, badRequest(fmt.Errorf("property must be for sale or for rent")))
		return
	}
	terms, err := req.toTerms()
	if err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}

	wf, err := h.workflows.Create(ctx, terms, req.Details.toDomain())
	if err != nil {
		res := ErrorResponse{Error: err.Error()}
		if wf != nil {
			res.Workflow = mapWorkflow(wf)
		}
		ctx.JSON(statusFor(err), res)
		return
	}

	ctx.JSON(http.StatusCreated, mapWorkflow(wf))
}

func (h *HTTPHandler) SetPropertyDetails(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	var req DetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	h.respondTx(ctx)(h.service.SetDetails(ctx, id, req.toDomain()))
}

func (h *HTTPHandler) UnlistProperty(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.respondTx(ctx)(h.service.UnlistProperty(ctx, id))
}

func (h *HTTPHandler) GetBids(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	bids, err := h.service.GetBids(ctx, id)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	data := make([]BidDTO, len(bids))
	for i, b := range bids {
		data[i] = mapBid(b)
	}
	ctx.JSON(http.StatusOK, data)
}

func (h *HTTPHandler) PlaceBid(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	var req PlaceBidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	amount, err := lib.ParseEther(req.Amount)
	if err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	bid := estate.BidRequest{Amount: amount, Value: amount}
	if req.Value != "" {
		bid.Value, err = lib.ParseEther(req.Value)
		if err != nil {
			h.writeError(ctx, badRequest(err))
			return
		}
	}
	h.respondTx(ctx)(h.service.PlaceBid(ctx, id, bid))
}

func (h *HTTPHandler) AcceptBid(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	var req AcceptBidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	h.respondTx(ctx)(h.service.AcceptBid(ctx, id, common.HexToAddress(req.Bidder)))
}

func (h *HTTPHandler) ToggleBidding(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	var req ToggleBiddingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	h.respondTx(ctx)(h.service.ToggleBidAcceptance(ctx, id, *req.AcceptingBids))
}

func (h *HTTPHandler) InspectProperty(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	var req InspectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	h.respondTx(ctx)(h.service.InspectProperty(ctx, id, req.Rating, req.Pass))
}

func (h *HTTPHandler) RentProperty(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	var req RentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	value, err := lib.ParseEther(req.Value)
	if err != nil {
		h.writeError(ctx, badRequest(err))
		return
	}
	h.respondTx(ctx)(h.service.RentProperty(ctx, id, value))
}

func parseID(ctx *gin.Context) (*big.Int, error) {
	raw := ctx.Param("id")
	id, ok := new(big.Int).SetString(raw, 10)
	if !ok || id.Sign() <= 0 {
		return nil, badRequest(fmt.Errorf("invalid property id %q", raw))
	}
	return id, nil
}

func filterPending(data []PropertyDTO) []PropertyDTO {
	res := []PropertyDTO{}
	for _, p := range data {
		if p.DetailsState == string(estate.DetailsStatePending) {
			res = append(res, p)
		}
	}
	return res
}

func idLess(a, b string) bool {
	x, _ := new(big.Int).SetString(a, 10)
	y, _ := new(big.Int).SetString(b, 10)
	return x.Cmp(y) < 0
}

// GetOverview is the landing page read: counter, contract owner and listings
func (h *HTTPHandler) GetOverview(ctx *gin.Context) {
	counter, owner, properties, err := h.service.Overview(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	listed := 0
	for i := range properties {
		if properties[i].Listing.Owner != (common.Address{}) {
			listed++
		}
	}
	ctx.JSON(http.StatusOK, gin.H{
		"counter": counter.String(),
		"owner":   owner.Hex(),
		"listed":  listed,
	})
}
