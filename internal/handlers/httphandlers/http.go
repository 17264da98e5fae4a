package httphandlers

import (
	"context"
	"math/big"
	"net/url"

	"github.com/estate-chain/marketplace-router/internal/config"
	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/estate-chain/marketplace-router/internal/resources/estate/marketplace"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MarketplaceService interface {
	WalletAddress() common.Address

	ListProperties(ctx context.Context) ([]estate.Property, error)
	GetProperty(ctx context.Context, id *big.Int) (*estate.Property, error)
	PropertyCounter(ctx context.Context) (*big.Int, error)
	GetBids(ctx context.Context, id *big.Int) ([]estate.Bid, error)
	GetInspector(ctx context.Context, addr common.Address) (*estate.Inspector, error)
	Owner(ctx context.Context) (common.Address, error)
	Overview(ctx context.Context) (*big.Int, common.Address, []estate.Property, error)

	SetDetails(ctx context.Context, id *big.Int, details estate.PropertyDetails) (*marketplace.TxResult, error)
	PlaceBid(ctx context.Context, id *big.Int, bid estate.BidRequest) (*marketplace.TxResult, error)
	AcceptBid(ctx context.Context, id *big.Int, bidder common.Address) (*marketplace.TxResult, error)
	InspectProperty(ctx context.Context, id *big.Int, rating uint8, pass bool) (*marketplace.TxResult, error)
	RentProperty(ctx context.Context, id *big.Int, value *big.Int) (*marketplace.TxResult, error)
	ToggleBidAcceptance(ctx context.Context, id *big.Int, accepting bool) (*marketplace.TxResult, error)
	UnlistProperty(ctx context.Context, id *big.Int) (*marketplace.TxResult, error)
	AddInspector(ctx context.Context, addr common.Address) (*marketplace.TxResult, error)
	RemoveInspector(ctx context.Context, addr common.Address) (*marketplace.TxResult, error)
	TransferOwnership(ctx context.Context, newOwner common.Address) (*marketplace.TxResult, error)
}

type ListingWorkflows interface {
	Create(ctx context.Context, terms estate.ListingTerms, details estate.PropertyDetails) (*estate.ListingWorkflow, error)
	RetryDetails(ctx context.Context, id uuid.UUID) (*estate.ListingWorkflow, error)
	Get(ctx context.Context, id uuid.UUID) (*estate.ListingWorkflow, error)
	List(ctx context.Context) ([]*estate.ListingWorkflow, error)
}

type EventFeed interface {
	Recent(limit int) []estate.Event
}

type CacheStats interface {
	Stats() (hits uint64, misses uint64)
}

type ReconcilerStatus interface {
	LastBlock() uint64
	Processed() uint64
	Restarts() uint64
	Dropped() uint64
}

type Sanitizable interface {
	GetSanitized() interface{}
}

type HTTPHandler struct {
	service    MarketplaceService
	workflows  ListingWorkflows
	feed       EventFeed
	cache      CacheStats
	reconciler ReconcilerStatus
	config     Sanitizable
	publicUrl  *url.URL
	log        interfaces.ILogger
}

func NewHTTPHandler(service MarketplaceService, workflows ListingWorkflows, feed EventFeed, cache CacheStats, reconciler ReconcilerStatus, cfg Sanitizable, publicUrl *url.URL, corsOrigins []string, log interfaces.ILogger) *gin.Engine {
	handl := &HTTPHandler{
		service:    service,
		workflows:  workflows,
		feed:       feed,
		cache:      cache,
		reconciler: reconciler,
		config:     cfg,
		publicUrl:  publicUrl,
		log:        log,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handl.requestLogger())
	if len(corsOrigins) > 0 {
		r.Use(newCORS(corsOrigins))
	}

	r.GET("/healthcheck", handl.HealthCheck)
	r.GET("/config", handl.GetConfig)
	r.GET("/overview", handl.GetOverview)

	r.GET("/properties", handl.GetProperties)
	r.GET("/properties/counter", handl.GetPropertyCounter)
	r.GET("/properties/:id", handl.GetProperty)
	r.POST("/properties", handl.CreateProperty)
	r.PUT("/properties/:id/details", handl.SetPropertyDetails)
	r.DELETE("/properties/:id", handl.UnlistProperty)

	r.GET("/properties/:id/bids", handl.GetBids)
	r.POST("/properties/:id/bids", handl.PlaceBid)
	r.POST("/properties/:id/bids/accept", handl.AcceptBid)
	r.POST("/properties/:id/bidding", handl.ToggleBidding)
	r.POST("/properties/:id/inspection", handl.InspectProperty)
	r.POST("/properties/:id/rent", handl.RentProperty)

	r.GET("/inspectors/:addr", handl.GetInspector)
	r.POST("/inspectors", handl.AddInspector)
	r.DELETE("/inspectors/:addr", handl.RemoveInspector)

	r.GET("/ownership", handl.GetOwner)
	r.POST("/ownership", handl.TransferOwnership)

	r.GET("/workflows", handl.GetWorkflows)
	r.GET("/workflows/:id", handl.GetWorkflow)
	r.POST("/workflows/:id/retry", handl.RetryWorkflow)

	r.GET("/events", handl.GetEvents)

	err := r.SetTrustedProxies(nil)
	if err != nil {
		panic(err)
	}

	return r
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	return cors.New(cfg)
}

func (h *HTTPHandler) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		h.log.Debugf("%s %s %d", ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status())
	}
}

func (h *HTTPHandler) HealthCheck(ctx *gin.Context) {
	res := gin.H{
		"status":  "healthy",
		"version": config.BuildVersion,
		"wallet":  h.service.WalletAddress().Hex(),
	}
	if h.cache != nil {
		hits, misses := h.cache.Stats()
		res["cache"] = gin.H{"hits": hits, "misses": misses}
	}
	if h.reconciler != nil {
		res["events"] = gin.H{
			"lastBlock":   h.reconciler.LastBlock(),
			"processed":   h.reconciler.Processed(),
			"restarts":    h.reconciler.Restarts(),
			"unpublished": h.reconciler.Dropped(),
		}
	}
	ctx.JSON(200, res)
}
