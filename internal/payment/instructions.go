package payment

import "strings"

const (
	// Manual transfer destinations.
	MethodBSI = "bsi"
	MethodBJB = "bjb"

	// Snap widget: card, VA, e-wallet and QRIS all ride on it.
	MethodMidtrans = "midtrans"
)

var InstructionMap = map[string][]string{
	MethodBSI: {
		"Buka aplikasi BSI Mobile atau ATM BSI",
		"Pilih menu Transfer → Rekening BSI",
		"Masukkan nomor rekening {{account_number}} a.n. {{account_name}}",
		"Transfer tepat sebesar {{amount}} (termasuk kode unik)",
		"Simpan bukti transfer",
		"Unggah bukti transfer dan konfirmasi melalui WhatsApp",
	},

	MethodBJB: {
		"Buka aplikasi BJB Digi atau ATM BJB",
		"Pilih menu Transfer → Antar Rekening BJB",
		"Masukkan nomor rekening {{account_number}} a.n. {{account_name}}",
		"Transfer tepat sebesar {{amount}} (termasuk kode unik)",
		"Simpan bukti transfer",
		"Unggah bukti transfer dan konfirmasi melalui WhatsApp",
	},

	MethodMidtrans: {
		"Lanjutkan pembayaran melalui halaman pembayaran yang terbuka",
		"Pilih metode pembayaran yang tersedia (VA, e-wallet, QRIS, kartu)",
		"Selesaikan pembayaran sebesar {{amount}} sebelum batas waktu",
		"Status donasi akan diperbarui otomatis setelah pembayaran diterima",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Ikuti instruksi pembayaran yang tersedia pada halaman ini",
	}
}

type InstructionVars map[string]string

func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}
