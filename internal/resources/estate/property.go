package estate

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrPropertyNotFound  = errors.New("property not found")
	ErrWorkflowNotFound  = errors.New("workflow not found")
	ErrUnexpectedID      = errors.New("decoded property id is not above the previous counter")
	ErrWorkflowNotResume = errors.New("workflow cannot be resumed")
)

// PropertyListing mirrors the on-chain listing terms and status flags. It is never
// locally authoritative, always re-read from the contract
type PropertyListing struct {
	Owner            common.Address
	Price            *big.Int
	RentAmount       *big.Int
	RentDuration     *big.Int
	ForSale          bool
	ForRent          bool
	IsInspected      bool
	InspectionRating uint8
	IsSold           bool
	IsRented         bool
	AcceptingBids    bool
}

// ListingTerms is the caller supplied part of a listing
type ListingTerms struct {
	Price         *big.Int
	ForSale       bool
	ForRent       bool
	RentAmount    *big.Int
	RentDuration  *big.Int
	AcceptingBids bool
}

type PropertyDetails struct {
	Name            string
	PhysicalAddress string
	ResidenceType   string
	Bedrooms        uint8
	Bathrooms       uint8
	SquareFeet      *big.Int
	YearBuilt       uint16
	KeyFeatures     []string
	Amenities       []string
	Description     string
}

// IsEmpty reports whether details were never attached to the listing
func (d PropertyDetails) IsEmpty() bool {
	return d.Name == "" && d.PhysicalAddress == "" && d.ResidenceType == "" && d.Description == ""
}

type DetailsState string

const (
	DetailsStateComplete DetailsState = "complete"
	DetailsStatePending  DetailsState = "pending"
)

type Property struct {
	ID      *big.Int
	Listing PropertyListing
	Details PropertyDetails
}

// DetailsState is pending when the listing transaction succeeded but details were
// never set (failed or not yet sent second transaction)
func (p *Property) DetailsState() DetailsState {
	if p.Details.IsEmpty() {
		return DetailsStatePending
	}
	return DetailsStateComplete
}

type Bid struct {
	PropertyID *big.Int
	Index      int64
	Bidder     common.Address
	Amount     *big.Int
	IsActive   bool
}

// BidRequest carries the declared bid amount and the value actually sent.
// The contract rejects bids where they differ
type BidRequest struct {
	Amount *big.Int
	Value  *big.Int
}

type Inspector struct {
	Address               common.Address
	IsRegistered          bool
	SuccessfulInspections *big.Int
	TotalInspections      *big.Int
}
