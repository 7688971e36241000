package donation

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidAmount     = errors.New("donation amount must be a positive integer")
	ErrMissingDonorName  = errors.New("donor name is required")
	ErrMissingDonorPhone = errors.New("donor phone is required")
	ErrMissingProof      = errors.New("proof of transfer is required")
	ErrProofTooLarge     = errors.New("proof file exceeds the 2MB limit")
	ErrProofBadType      = errors.New("proof file must be a jpeg or png image")
	ErrMissingTransfer   = errors.New("source bank, source account and transfer date are required")
	ErrUnknownMethod     = errors.New("unknown payment method")

	// -- Resource State --
	ErrNotFound = errors.New("donation not found")
)
