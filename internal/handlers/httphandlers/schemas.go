package httphandlers

import (
	"math/big"
	"time"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/estate-chain/marketplace-router/internal/resources/estate/marketplace"
)

type ConfigResponse struct {
	Version string
	Config  interface{}
}

type ErrorResponse struct {
	Error    string       `json:"error"`
	Workflow *WorkflowDTO `json:"workflow,omitempty"`
}

// Amounts are accepted as decimal ether strings, like the wallet UI shows them

type DetailsRequest struct {
	Name            string   `json:"name"            binding:"required,max=256"`
	PhysicalAddress string   `json:"physicalAddress" binding:"required,max=512"`
	ResidenceType   string   `json:"residenceType"   binding:"required,max=64"`
	Bedrooms        uint8    `json:"bedrooms"`
	Bathrooms       uint8    `json:"bathrooms"`
	SquareFeet      uint64   `json:"squareFeet"      binding:"required"`
	YearBuilt       uint16   `json:"yearBuilt"       binding:"required,min=1000,max=9999"`
	KeyFeatures     []string `json:"keyFeatures"     binding:"omitempty,dive,max=128"`
	Amenities       []string `json:"amenities"       binding:"omitempty,dive,max=128"`
	Description     string   `json:"description"     binding:"required,max=4096"`
}

func (r DetailsRequest) toDomain() estate.PropertyDetails {
	return estate.PropertyDetails{
		Name:            r.Name,
		PhysicalAddress: r.PhysicalAddress,
		ResidenceType:   r.ResidenceType,
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		SquareFeet:      new(big.Int).SetUint64(r.SquareFeet),
		YearBuilt:       r.YearBuilt,
		KeyFeatures:     nonNil(r.KeyFeatures),
		Amenities:       nonNil(r.Amenities),
		Description:     r.Description,
	}
}

type CreatePropertyRequest struct {
	Price         string         `json:"price"        binding:"required_if=ForSale true"`
	ForSale       bool           `json:"forSale"`
	ForRent       bool           `json:"forRent"`
	RentAmount    string         `json:"rentAmount"   binding:"required_if=ForRent true"`
	RentDuration  uint64         `json:"rentDuration" binding:"required_if=ForRent true"`
	AcceptingBids bool           `json:"acceptingBids"`
	Details       DetailsRequest `json:"details"`
}

func (r CreatePropertyRequest) toTerms() (estate.ListingTerms, error) {
	price, err := lib.ParseEtherOrZero(r.Price)
	if err != nil {
		return estate.ListingTerms{}, err
	}
	rentAmount, err := lib.ParseEtherOrZero(r.RentAmount)
	if err != nil {
		return estate.ListingTerms{}, err
	}
	return estate.ListingTerms{
		Price:         price,
		ForSale:       r.ForSale,
		ForRent:       r.ForRent,
		RentAmount:    rentAmount,
		RentDuration:  new(big.Int).SetUint64(r.RentDuration),
		AcceptingBids: r.AcceptingBids,
	}, nil
}

type PlaceBidRequest struct {
	Amount string `json:"amount" binding:"required"`
	Value  string `json:"value"` // defaults to amount
}

type AcceptBidRequest struct {
	Bidder string `json:"bidder" binding:"required,eth_addr"`
}

type InspectRequest struct {
	Rating uint8 `json:"rating" binding:"required,min=1,max=5"`
	Pass   bool  `json:"pass"`
}

type RentRequest struct {
	Value string `json:"value" binding:"required"`
}

type ToggleBiddingRequest struct {
	AcceptingBids *bool `json:"acceptingBids" binding:"required"`
}

type AddressRequest struct {
	Address string `json:"address" binding:"required,eth_addr"`
}

type TxResponse struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}

func mapTx(res *marketplace.TxResult) TxResponse {
	return TxResponse{
		TxHash:      res.TxHash.Hex(),
		BlockNumber: res.BlockNumber,
		GasUsed:     res.GasUsed,
	}
}

type ListingDTO struct {
	Owner            string `json:"owner"`
	PriceWei         string `json:"priceWei"`
	PriceEth         string `json:"priceEth"`
	RentAmountWei    string `json:"rentAmountWei"`
	RentAmountEth    string `json:"rentAmountEth"`
	RentDuration     string `json:"rentDuration"`
	ForSale          bool   `json:"forSale"`
	ForRent          bool   `json:"forRent"`
	IsInspected      bool   `json:"isInspected"`
	InspectionRating uint8  `json:"inspectionRating"`
	IsSold           bool   `json:"isSold"`
	IsRented         bool   `json:"isRented"`
	AcceptingBids    bool   `json:"acceptingBids"`
}

type DetailsDTO struct {
	Name            string   `json:"name"`
	PhysicalAddress string   `json:"physicalAddress"`
	ResidenceType   string   `json:"residenceType"`
	Bedrooms        uint8    `json:"bedrooms"`
	Bathrooms       uint8    `json:"bathrooms"`
	SquareFeet      string   `json:"squareFeet"`
	YearBuilt       uint16   `json:"yearBuilt"`
	KeyFeatures     []string `json:"keyFeatures"`
	Amenities       []string `json:"amenities"`
	Description     string   `json:"description"`
}

type PropertyDTO struct {
	ID           string     `json:"id"`
	DetailsState string     `json:"detailsState"`
	Listing      ListingDTO `json:"listing"`
	Details      DetailsDTO `json:"details"`
}

func mapProperty(p *estate.Property) PropertyDTO {
	l := p.Listing
	return PropertyDTO{
		ID:           p.ID.String(),
		DetailsState: string(p.DetailsState()),
		Listing: ListingDTO{
			Owner:            l.Owner.Hex(),
			PriceWei:         bigString(l.Price),
			PriceEth:         lib.FormatEther(l.Price),
			RentAmountWei:    bigString(l.RentAmount),
			RentAmountEth:    lib.FormatEther(l.RentAmount),
			RentDuration:     bigString(l.RentDuration),
			ForSale:          l.ForSale,
			ForRent:          l.ForRent,
			IsInspected:      l.IsInspected,
			InspectionRating: l.InspectionRating,
			IsSold:           l.IsSold,
			IsRented:         l.IsRented,
			AcceptingBids:    l.AcceptingBids,
		},
		Details: mapDetails(p.Details),
	}
}

func mapDetails(d estate.PropertyDetails) DetailsDTO {
	return DetailsDTO{
		Name:            d.Name,
		PhysicalAddress: d.PhysicalAddress,
		ResidenceType:   d.ResidenceType,
		Bedrooms:        d.Bedrooms,
		Bathrooms:       d.Bathrooms,
		SquareFeet:      bigString(d.SquareFeet),
		YearBuilt:       d.YearBuilt,
		KeyFeatures:     nonNil(d.KeyFeatures),
		Amenities:       nonNil(d.Amenities),
		Description:     d.Description,
	}
}

type BidDTO struct {
	Index     int64  `json:"index"`
	Bidder    string `json:"bidder"`
	AmountWei string `json:"amountWei"`
	AmountEth string `json:"amountEth"`
	IsActive  bool   `json:"isActive"`
}

func mapBid(b estate.Bid) BidDTO {
	return BidDTO{
		Index:     b.Index,
		Bidder:    b.Bidder.Hex(),
		AmountWei: bigString(b.Amount),
		AmountEth: lib.FormatEther(b.Amount),
		IsActive:  b.IsActive,
	}
}

type InspectorDTO struct {
	Address               string `json:"address"`
	IsRegistered          bool   `json:"isRegistered"`
	SuccessfulInspections string `json:"successfulInspections"`
	TotalInspections      string `json:"totalInspections"`
}

type WorkflowDTO struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	PropertyID    *string    `json:"propertyId"`
	ListingTxHash string     `json:"listingTxHash,omitempty"`
	DetailsTxHash string     `json:"detailsTxHash,omitempty"`
	LastError     string     `json:"lastError,omitempty"`
	Details       DetailsDTO `json:"details"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func mapWorkflow(wf *estate.ListingWorkflow) *WorkflowDTO {
	dto := &WorkflowDTO{
		ID:            wf.ID.String(),
		Status:        string(wf.Status),
		ListingTxHash: wf.ListingTxHash,
		DetailsTxHash: wf.DetailsTxHash,
		LastError:     wf.LastError,
		Details:       mapDetails(wf.Details),
		CreatedAt:     wf.CreatedAt,
		UpdatedAt:     wf.UpdatedAt,
	}
	if wf.PropertyID != nil {
		id := wf.PropertyID.String()
		dto.PropertyID = &id
	}
	return dto
}

type EventDTO struct {
	Name        string    `json:"name"`
	PropertyID  *string   `json:"propertyId,omitempty"`
	Account     *string   `json:"account,omitempty"`
	AmountWei   *string   `json:"amountWei,omitempty"`
	Rating      uint8     `json:"rating,omitempty"`
	TxHash      string    `json:"txHash"`
	BlockNumber uint64    `json:"blockNumber"`
	LogIndex    uint      `json:"logIndex"`
	ObservedAt  time.Time `json:"observedAt"`
}

func mapEvent(ev estate.Event) EventDTO {
	dto := EventDTO{
		Name:        string(ev.Name),
		Rating:      ev.Rating,
		TxHash:      ev.TxHash.Hex(),
		BlockNumber: ev.BlockNumber,
		LogIndex:    ev.LogIndex,
		ObservedAt:  ev.ObservedAt,
	}
	if ev.PropertyID != nil {
		s := ev.PropertyID.String()
		dto.PropertyID = &s
	}
	if ev.Account != nil {
		s := ev.Account.Hex()
		dto.Account = &s
	}
	if ev.Amount != nil {
		s := ev.Amount.String()
		dto.AmountWei = &s
	}
	return dto
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
