package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DispatchStatus is the overall outcome of a batch dispatch
type DispatchStatus string

const (
	DispatchStatusSuccess DispatchStatus = "success"
	DispatchStatusPartial DispatchStatus = "partial"
	DispatchStatusFailed  DispatchStatus = "failed"
)

// Parcel is a single shipment handed to the carrier
type Parcel struct {
	// Tracking is the tracking reference assigned by us
	Tracking string
	// OrderRef is our internal order ID, echoed back in dispatch results
	OrderRef string
	// ExternalID is the store order ID
	ExternalID string
	// Client is the recipient's full name
	Client string
	// Phone is the recipient's primary phone number
	Phone string
	// Address is the delivery street address
	Address string
	// WilayaID is the destination province code
	WilayaID string
	// Commune is the destination commune or city
	Commune string
	// Total is the cash-on-delivery amount
	Total decimal.Decimal
	// Products is the manifest of shipped products
	Products string
	// Note is free-form delivery instructions
	Note string
}

// DispatchFailure describes a parcel the carrier rejected
type DispatchFailure struct {
	// OrderRef identifies the order whose parcel failed
	OrderRef string `json:"order_ref"`
	// Message is the carrier's rejection reason
	Message string `json:"message"`
}

// DispatchResult is the itemized outcome of a batch dispatch.
// Every parcel lands in exactly one of the accepted or failed sets.
type DispatchResult struct {
	// Status is the overall batch outcome
	Status DispatchStatus `json:"status"`
	// SuccessCount is the number of parcels the carrier accepted
	SuccessCount int `json:"success_count"`
	// FailedCount is the number of parcels the carrier rejected
	FailedCount int `json:"failed_count"`
	// AcceptedRefs are the order refs of accepted parcels
	AcceptedRefs []string `json:"accepted_refs"`
	// Failures describe the rejected parcels
	Failures []DispatchFailure `json:"failures"`
	// DispatchedAt is when the batch completed
	DispatchedAt time.Time `json:"dispatched_at"`
}

// Finalize derives the overall status from the counts
func (r *DispatchResult) Finalize() {
	switch {
	case r.FailedCount == 0:
		r.Status = DispatchStatusSuccess
	case r.SuccessCount > 0:
		r.Status = DispatchStatusPartial
	default:
		r.Status = DispatchStatusFailed
	}
}

// CarrierCredentials holds the delivery carrier API configuration
type CarrierCredentials struct {
	Token string
	Key   string
}

// Configured returns true when both fields are set
func (c CarrierCredentials) Configured() bool {
	return c.Token != "" && c.Key != ""
}

// Carrier is the port for the delivery carrier.
// The concrete adapter lives in the infrastructure layer.
type Carrier interface {
	// Dispatch submits a batch of parcels in a single call and
	// reports the per-parcel outcome
	Dispatch(ctx context.Context, creds CarrierCredentials, parcels []Parcel) (*DispatchResult, error)

	// TestConnection probes the carrier API with the given credentials
	TestConnection(ctx context.Context, creds CarrierCredentials) ConnectionStatus
}
