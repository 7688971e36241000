package payment

import (
	"bytes"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"context"

	"github.com/nj-ramadhan/barakah-be/internal/logger"
	"github.com/nj-ramadhan/barakah-be/internal/utils"

	"go.uber.org/zap"
)

const (
	snapBaseProduction = "https://app.midtrans.com"
	snapBaseSandbox    = "https://app.sandbox.midtrans.com"
	apiBaseProduction  = "https://api.midtrans.com"
	apiBaseSandbox     = "https://api.sandbox.midtrans.com"
)

type midtransGateway struct {
	serverKey  string
	snapBase   string
	apiBase    string
	httpClient *http.Client
}

func NewMidtransGateway(serverKey string, sandbox bool) Gateway {
	if serverKey == "" {
		logger.L().Warn("Midtrans server key is empty")
	}

	g := &midtransGateway{
		serverKey: serverKey,
		snapBase:  snapBaseProduction,
		apiBase:   apiBaseProduction,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	if sandbox {
		g.snapBase = snapBaseSandbox
		g.apiBase = apiBaseSandbox
	}
	return g
}

func (g *midtransGateway) CreateSnapToken(ctx context.Context, req SnapRequest) (*SnapToken, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("reference_id", req.ReferenceID),
		zap.Int64("gross_amount", req.GrossAmount),
	)

	body := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     req.ReferenceID,
			"gross_amount": req.GrossAmount,
		},
		"item_details": []map[string]interface{}{
			{
				"id":       req.ReferenceID,
				"name":     req.ItemName,
				"price":    req.GrossAmount,
				"quantity": 1,
			},
		},
		"customer_details": map[string]interface{}{
			"first_name": req.CustomerName,
			"email":      req.CustomerEmail,
			"phone":      utils.NormalizePhoneID(req.CustomerPhone),
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		g.snapBase+"/snap/v1/transactions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(g.serverKey, "")
	httpReq.Header.Add("Content-Type", "application/json")
	httpReq.Header.Add("Accept", "application/json")

	log.Info("requesting snap token")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		log.Error("snap request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snap response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("snap returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("midtrans error: %s", string(bodyBytes))
	}

	var token SnapToken
	if err := json.Unmarshal(bodyBytes, &token); err != nil {
		log.Error("failed decoding snap response", zap.Error(err))
		return nil, err
	}

	log.Info("snap token created")
	return &token, nil
}

func (g *midtransGateway) GetStatus(ctx context.Context, referenceID string) (*TransactionStatus, error) {
	log := logger.FromCtx(ctx).With(zap.String("reference_id", referenceID))

	url := fmt.Sprintf("%s/v2/%s/status", g.apiBase, referenceID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.serverKey, "")
	req.Header.Add("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("status request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read status response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		log.Error("status returned error",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("midtrans error: %s", string(bodyBytes))
	}

	var status TransactionStatus
	if err := json.Unmarshal(bodyBytes, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// VerifySignature checks the sha512 over order_id + status_code +
// gross_amount + server key that the gateway signs every notification
// with.
func (g *midtransGateway) VerifySignature(n *Notification) error {
	payload := n.OrderID + n.StatusCode + n.GrossAmount + g.serverKey
	sum := sha512.Sum512([]byte(payload))
	expected := hex.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) != 1 {
		return ErrBadSignature
	}
	return nil
}
