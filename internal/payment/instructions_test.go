package payment

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInstructions(t *testing.T) {
	t.Run("Known method", func(t *testing.T) {
		steps := GetInstructions(MethodBSI)
		assert.NotEmpty(t, steps)
		assert.Contains(t, steps[0], "BSI")
	})

	t.Run("Unknown method falls back", func(t *testing.T) {
		steps := GetInstructions("paypal")
		assert.Len(t, steps, 1)
	})
}

func TestInjectVariables(t *testing.T) {
	steps := []string{
		"Transfer tepat sebesar {{amount}} (termasuk kode unik)",
		"Masukkan nomor rekening {{account_number}} a.n. {{account_name}}",
	}

	result := InjectVariables(steps, InstructionVars{
		"amount":         "Rp 50.500",
		"account_number": "1040 4974 08",
		"account_name":   "Bank Syariah Indonesia",
	})

	assert.Equal(t, "Transfer tepat sebesar Rp 50.500 (termasuk kode unik)", result[0])
	assert.Equal(t, "Masukkan nomor rekening 1040 4974 08 a.n. Bank Syariah Indonesia", result[1])
}

func TestHandler_Instructions(t *testing.T) {
	h := NewHandler(nil)
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)

	t.Run("Amount and bank details are injected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/instructions?method=bsi&amount=50500", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Rp 50.500")
		assert.Contains(t, rec.Body.String(), "1040 4974 08")
		assert.NotContains(t, rec.Body.String(), "{{amount}}")
	})

	t.Run("Garbage amount leaves the placeholder", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/instructions?method=bsi&amount=abc", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "{{amount}}")
	})
}

func TestApplyOffset(t *testing.T) {
	assert.Equal(t, int64(50500), ApplyOffset(50000, DefaultOffset))
	assert.Equal(t, int64(100100), ApplyOffset(100000, defaultOffsets["dhuafa"]))
	assert.Equal(t, int64(25300), ApplyOffset(25000, defaultOffsets["palestine"]))
}
