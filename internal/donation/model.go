package donation

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Payment methods the donation form offers. bsi and bjb are the
// manual bank-transfer paths; midtrans is the widget flow.
const (
	MethodBSI      = "bsi"
	MethodBJB      = "bjb"
	MethodMidtrans = "midtrans"
)

type Donation struct {
	ID            uint      `json:"id"`
	CampaignID    uint      `json:"campaign_id"`
	CampaignTitle string    `json:"campaign_title,omitempty"`
	DonorID       *uint     `json:"donor_id,omitempty"`
	Amount        int64     `json:"amount"`
	DonorName     string    `json:"donor_name"`
	DonorPhone    string    `json:"donor_phone"`
	DonorEmail    *string   `json:"donor_email,omitempty"`
	IsAnonymous   bool      `json:"is_anonymous"`
	Message       string    `json:"message,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus Status    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`

	// Manual bank-transfer confirmation fields
	SourceBank    *string    `json:"source_bank,omitempty"`
	SourceAccount *string    `json:"source_account,omitempty"`
	AccountName   *string    `json:"account_name,omitempty"`
	TransferDate  *time.Time `json:"transfer_date,omitempty"`
	ProofPath     *string    `json:"-"`

	WhatsAppSent   bool       `json:"whatsapp_sent"`
	WhatsAppSentAt *time.Time `json:"whatsapp_sent_at,omitempty"`
}

// AnonymousDonorName replaces the donor's name on public lists when
// they chose to hide their identity.
const AnonymousDonorName = "Hamba Allah"

// DisplayName is what the contributions tab shows.
func (d *Donation) DisplayName() string {
	if d.IsAnonymous {
		return AnonymousDonorName
	}
	return d.DonorName
}
