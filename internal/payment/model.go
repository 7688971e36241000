package payment

import (
	"fmt"
	"time"
)

// TargetKind says what a payment settles: a campaign donation or a
// shop order.
type TargetKind string

const (
	TargetDonation TargetKind = "donation"
	TargetOrder    TargetKind = "order"
)

type Payment struct {
	ID          uint
	ReferenceID string
	TargetKind  TargetKind
	DonationID  *uint
	OrderNumber *string
	Amount      int64
	GrossAmount int64
	Status      string
	SnapToken   string
	RedirectURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DonationReference builds the gateway order_id for a donation.
// Encoding both ids keeps webhook handling stateless.
func DonationReference(donationID, campaignID uint) string {
	return fmt.Sprintf("D%d-C%d", donationID, campaignID)
}

type SnapRequest struct {
	ReferenceID   string
	GrossAmount   int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ItemName      string
}

type SnapToken struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Notification is the gateway's HTTP callback payload. Amounts arrive
// as decimal strings ("50500.00").
type Notification struct {
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	SignatureKey      string `json:"signature_key"`
	TransactionTime   string `json:"transaction_time"`
	SettlementTime    string `json:"settlement_time"`
}

type TransactionStatus struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	GrossAmount       string `json:"gross_amount"`
	SettlementTime    string `json:"settlement_time"`
}

// Outcome is the domain-side verdict for a gateway transaction status.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomePending
	OutcomeSuccess
	OutcomeFailed
)

// ClassifyStatus maps gateway transaction statuses onto outcomes.
// "capture" only counts when fraud screening accepts it.
func ClassifyStatus(transactionStatus, fraudStatus string) Outcome {
	switch transactionStatus {
	case "settlement":
		return OutcomeSuccess
	case "capture":
		if fraudStatus == "" || fraudStatus == "accept" {
			return OutcomeSuccess
		}
		return OutcomePending
	case "pending", "authorize":
		return OutcomePending
	case "deny", "cancel", "expire", "failure":
		return OutcomeFailed
	}
	return OutcomeUnknown
}

// Terminal reports whether the outcome will never change again.
func (o Outcome) Terminal() bool {
	return o == OutcomeSuccess || o == OutcomeFailed
}
