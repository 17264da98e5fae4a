package estate

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

type WorkflowStatus string

const (
	WorkflowStatusSubmitted      WorkflowStatus = "submitted"       // listing transaction sent
	WorkflowStatusListed         WorkflowStatus = "listed"          // listing mined, id decoded
	WorkflowStatusDetailsPending WorkflowStatus = "details_pending" // details transaction sent
	WorkflowStatusDetailsFailed  WorkflowStatus = "details_failed"  // listing exists on-chain without details
	WorkflowStatusComplete       WorkflowStatus = "complete"
	WorkflowStatusFailed         WorkflowStatus = "failed" // listing was not created
)

// ListingWorkflow tracks the two non-atomic transactions that create a listing
// and attach details to it
type ListingWorkflow struct {
	ID            uuid.UUID
	Status        WorkflowStatus
	Terms         ListingTerms
	Details       PropertyDetails
	PropertyID    *big.Int
	PrevCounter   *big.Int // property counter before the listing tx, nil if unknown
	ListingTxHash string
	DetailsTxHash string
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewListingWorkflow(terms ListingTerms, details PropertyDetails, now time.Time) *ListingWorkflow {
	return &ListingWorkflow{
		ID:        uuid.New(),
		Status:    WorkflowStatusSubmitted,
		Terms:     terms,
		Details:   details,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanResume is true when the listing tx was sent but its outcome was never seen,
// or when the listing exists and details are still missing
func (w *ListingWorkflow) CanResume() bool {
	if w.PropertyID == nil {
		return w.Status == WorkflowStatusSubmitted && w.ListingTxHash != ""
	}
	return w.Status == WorkflowStatusListed || w.Status == WorkflowStatusDetailsFailed || w.Status == WorkflowStatusDetailsPending
}

func (w *ListingWorkflow) Copy() *ListingWorkflow {
	c := *w
	if w.PropertyID != nil {
		c.PropertyID = new(big.Int).Set(w.PropertyID)
	}
	if w.PrevCounter != nil {
		c.PrevCounter = new(big.Int).Set(w.PrevCounter)
	}
	c.Details.KeyFeatures = append([]string(nil), w.Details.KeyFeatures...)
	c.Details.Amenities = append([]string(nil), w.Details.Amenities...)
	return &c
}
