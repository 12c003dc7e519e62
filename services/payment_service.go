package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	"journal-review-api/config"
	"journal-review-api/models"
)

// GatewayOrder is the payable order the gateway creates for a submission fee.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // smallest currency unit
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentGateway creates payable orders with an external provider.
type PaymentGateway interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error)
}

// RazorpayClient talks to the Razorpay orders API over HTTP basic auth.
type RazorpayClient struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	client    *http.Client
}

func NewRazorpayClient() *RazorpayClient {
	base := os.Getenv("RAZORPAY_BASE_URL")
	if base == "" {
		base = "https://api.razorpay.com/v1"
	}
	return &RazorpayClient{
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		BaseURL:   base,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *RazorpayClient) CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyRazorpaySignature checks the gateway's HMAC-SHA256 attestation over
// "orderId|paymentId".
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// PaymentService creates submission-fee orders and confirms verified
// payments on the paper record.
type PaymentService struct {
	db        *gorm.DB
	gateway   PaymentGateway
	keyID     string
	keySecret string
}

func NewPaymentService(db *gorm.DB, gateway PaymentGateway) *PaymentService {
	if db == nil {
		db = config.DB
	}
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if gateway == nil {
		gateway = NewRazorpayClient()
	}
	return &PaymentService{db: db, gateway: gateway, keyID: keyID, keySecret: keySecret}
}

// KeyID exposes the public gateway key for checkout clients.
func (s *PaymentService) KeyID() string { return s.keyID }

// CreateOrder opens a payable order for the paper's submission fee. Amount is
// in whole rupees; the gateway wants paise.
func (s *PaymentService) CreateOrder(paperID uint, amount float64) (*GatewayOrder, error) {
	if paperID == 0 {
		return nil, &ValidationError{Msg: "paperId is required."}
	}
	if amount <= 0 {
		amount = models.DefaultSubmissionFee
	}

	order, err := s.gateway.CreateOrder(int64(amount*100), "INR", fmt.Sprintf("receipt_paper_%d", paperID), map[string]string{
		"paperId": fmt.Sprintf("%d", paperID),
	})
	if err != nil {
		return nil, dependencyErr("create payment order", err)
	}
	return order, nil
}

// VerifyPayment validates the gateway signature and marks the paper as paid.
// A signature mismatch is the caller's fault, not an internal failure; the
// paper update, however, is fatal when it breaks.
func (s *PaymentService) VerifyPayment(orderID, paymentID, signature string, paperID uint) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return &ValidationError{Msg: "Missing payment verification fields."}
	}

	if !VerifyRazorpaySignature(orderID, paymentID, signature, s.keySecret) {
		return &ValidationError{Msg: "Invalid signature. Payment verification failed."}
	}

	if paperID != 0 {
		if err := s.db.Model(&models.Paper{}).
			Where("id = ?", paperID).
			Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
			return dependencyErr("update payment status", err)
		}
	}
	return nil
}
