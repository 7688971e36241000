package payment

import "context"

type Gateway interface {
	CreateSnapToken(ctx context.Context, req SnapRequest) (*SnapToken, error)
	GetStatus(ctx context.Context, referenceID string) (*TransactionStatus, error)
	VerifySignature(n *Notification) error
}
