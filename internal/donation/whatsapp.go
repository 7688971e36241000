package donation

import (
	"fmt"
	"net/url"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/utils"
)

// Bank accounts offered on the manual-transfer confirmation screen.
type BankAccount struct {
	Code     string `json:"code"`
	FullName string `json:"full_name"`
	Number   string `json:"number"`
}

var BankAccounts = map[string]BankAccount{
	MethodBSI: {Code: MethodBSI, FullName: "Bank Syariah Indonesia", Number: "1040 4974 08"},
	MethodBJB: {Code: MethodBJB, FullName: "Bank Jabar Banten Syariah", Number: "5130 1020 01161"},
}

type ConfirmationMessage struct {
	AccountName   string
	CampaignTitle string
	Amount        int64
	BankFullName  string
	SourceBank    string
	SourceAccount string
	TransferDate  time.Time
}

func formatDateID(t time.Time) string {
	return t.Format("02/01/2006")
}

// BuildWhatsAppLink produces the wa.me deep link with the prefilled
// admin confirmation message the donor sends after uploading proof.
func BuildWhatsAppLink(adminPhone string, m ConfirmationMessage) string {
	text := fmt.Sprintf(`*Donasi BAE Community*
------------------------------------
Bismillah..
Pada hari ini,
Tanggal %s
Saya %s berniat menitipkan donasi pada program %s
dengan nominal Rp %s melalui Bank %s

Saya mengirim donasi dari Bank %s, dengan No. Rekening %s
------------------------------------

Bukti transfer telah saya upload, mohon konfirmasi.
Semoga dapat menjadi amal ibadah bagi saya dan bermanfaat untuk program serta penerimanya`,
		formatDateID(m.TransferDate),
		m.AccountName,
		m.CampaignTitle,
		utils.FormatIDR(m.Amount),
		m.BankFullName,
		m.SourceBank,
		m.SourceAccount,
	)

	return fmt.Sprintf("https://wa.me/%s?text=%s",
		utils.NormalizePhoneID(adminPhone),
		url.QueryEscape(text),
	)
}
