package marketplace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/estate-chain/marketplace-router/internal/repositories/contracts"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
)

// ListingWorkflow creates a listing and attaches details to it. The contract needs
// two transactions for that, the second one depends on the property id decoded from
// the first receipt. Progress is persisted so a listing without details can be resumed
type ListingWorkflow struct {
	marketplace Marketplace
	store       WorkflowStore
	cache       *QueryCache
	log         interfaces.ILogger
	now         func() time.Time
}

func NewListingWorkflow(marketplace Marketplace, store WorkflowStore, cache *QueryCache, log interfaces.ILogger) *ListingWorkflow {
	return &ListingWorkflow{
		marketplace: marketplace,
		store:       store,
		cache:       cache,
		log:         log,
		now:         time.Now,
	}
}

// Create returns the workflow record even on failure, it tells how far the process got
func (w *ListingWorkflow) Create(ctx context.Context, terms estate.ListingTerms, details estate.PropertyDetails) (*estate.ListingWorkflow, error) {
	wf := estate.NewListingWorkflow(terms, details, w.now())
	log := w.log.With("workflow", wf.ID.String())

	if err := w.store.Save(ctx, wf); err != nil {
		return nil, err
	}

	// best effort, only used to sanity check the decoded id
	counter, err := w.marketplace.PropertyCounter(ctx)
	if err != nil {
		log.Warnf("cannot read property counter: %s", err)
	} else {
		wf.PrevCounter = counter
	}

	tx, err := w.marketplace.ListProperty(ctx, terms)
	if err != nil {
		return w.fail(wf, estate.WorkflowStatusFailed, err)
	}
	wf.ListingTxHash = tx.Hash().Hex()
	w.save(wf)
	log.Infof("listing submitted, tx %s", wf.ListingTxHash)

	receipt, err := w.marketplace.WaitReceipt(ctx, tx)
	if err != nil {
		// outcome is unknown unless the chain said otherwise
		status := estate.WorkflowStatusSubmitted
		if errors.Is(err, contracts.ErrReverted) {
			status = estate.WorkflowStatusFailed
		}
		return w.fail(wf, status, err)
	}

	return w.completeListing(ctx, wf, receipt)
}

// RetryDetails resumes a workflow. When the listing outcome was never seen the
// receipt is looked up by hash first, then the details transaction is resent
func (w *ListingWorkflow) RetryDetails(ctx context.Context, id uuid.UUID) (*estate.ListingWorkflow, error) {
	wf, err := w.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !wf.CanResume() {
		return wf, fmt.Errorf("%w: status %s", estate.ErrWorkflowNotResume, wf.Status)
	}
	if wf.PropertyID != nil {
		return w.attachDetails(ctx, wf)
	}

	receipt, err := w.marketplace.ReceiptByHash(ctx, common.HexToHash(wf.ListingTxHash))
	if err != nil {
		status := estate.WorkflowStatusSubmitted
		if errors.Is(err, contracts.ErrReverted) {
			status = estate.WorkflowStatusFailed
		}
		return w.fail(wf, status, err)
	}
	w.log.Infof("workflow %s: listing tx %s found mined in block %s", wf.ID, wf.ListingTxHash, receipt.BlockNumber)

	return w.completeListing(ctx, wf, receipt)
}

// completeListing takes the mined listing receipt, records the new property id
// and moves on to the details transaction
func (w *ListingWorkflow) completeListing(ctx context.Context, wf *estate.ListingWorkflow, receipt *types.Receipt) (*estate.ListingWorkflow, error) {
	w.cache.Invalidate(KeyProperties, KeyCounter)

	id, err := w.marketplace.DecodePropertyID(receipt)
	if err != nil {
		return w.fail(wf, estate.WorkflowStatusFailed, err)
	}
	if wf.PrevCounter != nil && id.Cmp(wf.PrevCounter) <= 0 {
		err = lib.WrapError(contracts.ErrParse, fmt.Errorf("%w: id %s, counter %s", estate.ErrUnexpectedID, id, wf.PrevCounter))
		return w.fail(wf, estate.WorkflowStatusFailed, err)
	}

	wf.PropertyID = id
	wf.Status = estate.WorkflowStatusListed
	w.save(wf)
	w.log.Infof("workflow %s: property %s listed", wf.ID, id)

	return w.attachDetails(ctx, wf)
}

func (w *ListingWorkflow) Get(ctx context.Context, id uuid.UUID) (*estate.ListingWorkflow, error) {
	return w.store.Get(ctx, id)
}

func (w *ListingWorkflow) List(ctx context.Context) ([]*estate.ListingWorkflow, error) {
	return w.store.List(ctx)
}

func (w *ListingWorkflow) attachDetails(ctx context.Context, wf *estate.ListingWorkflow) (*estate.ListingWorkflow, error) {
	wf.Status = estate.WorkflowStatusDetailsPending
	wf.LastError = ""
	w.save(wf)

	tx, err := w.marketplace.SetPropertyDetails(ctx, wf.PropertyID, wf.Details)
	if err != nil {
		return w.fail(wf, estate.WorkflowStatusDetailsFailed, err)
	}
	wf.DetailsTxHash = tx.Hash().Hex()
	w.save(wf)

	_, err = w.marketplace.WaitReceipt(ctx, tx)
	w.cache.Invalidate(PropertyKey(wf.PropertyID), KeyProperties)
	if err != nil {
		return w.fail(wf, estate.WorkflowStatusDetailsFailed, err)
	}

	wf.Status = estate.WorkflowStatusComplete
	w.save(wf)
	w.log.Infof("details set for property %s, workflow %s", wf.PropertyID, wf.ID)

	return wf.Copy(), nil
}

func (w *ListingWorkflow) fail(wf *estate.ListingWorkflow, status estate.WorkflowStatus, err error) (*estate.ListingWorkflow, error) {
	wf.Status = status
	wf.LastError = err.Error()
	w.save(wf)

	switch {
	case wf.PropertyID != nil:
		w.log.Warnf("workflow %s: property %s has no details: %s", wf.ID, wf.PropertyID, err)
	case status == estate.WorkflowStatusSubmitted:
		w.log.Warnf("workflow %s: listing tx %s outcome unknown: %s", wf.ID, wf.ListingTxHash, err)
	default:
		w.log.Warnf("workflow %s: listing failed: %s", wf.ID, err)
	}
	return wf.Copy(), err
}

// save is detached from the request context, store errors are only logged
func (w *ListingWorkflow) save(wf *estate.ListingWorkflow) {
	wf.UpdatedAt = w.now()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := w.store.Save(ctx, wf); err != nil {
		w.log.Errorf("cannot persist workflow %s (%s): %s", wf.ID, wf.Status, err)
	}
}
