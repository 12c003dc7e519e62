package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"testing"
)

type fakeGateway struct {
	amount   int64
	currency string
	receipt  string
	notes    map[string]string
	err      error
}

func (g *fakeGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	g.amount = amount
	g.currency = currency
	g.receipt = receipt
	g.notes = notes
	if g.err != nil {
		return nil, g.err
	}
	return &GatewayOrder{ID: "order_test", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func signRazorpay(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	sig := signRazorpay("order_1", "pay_1", "topsecret")
	if !VerifyRazorpaySignature("order_1", "pay_1", sig, "topsecret") {
		t.Fatalf("valid signature rejected")
	}
	if VerifyRazorpaySignature("order_1", "pay_1", sig, "wrongsecret") {
		t.Fatalf("signature accepted with wrong secret")
	}
	if VerifyRazorpaySignature("order_2", "pay_1", sig, "topsecret") {
		t.Fatalf("signature accepted for different order")
	}
}

func TestCreateOrderDefaultsAmount(t *testing.T) {
	gormDB, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	gateway := &fakeGateway{}
	service := NewPaymentService(gormDB, gateway)

	order, err := service.CreateOrder(5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gateway.amount != 15000 {
		t.Fatalf("expected default fee in paise, got %d", gateway.amount)
	}
	if gateway.currency != "INR" {
		t.Fatalf("unexpected currency: %s", gateway.currency)
	}
	if gateway.receipt != "receipt_paper_5" {
		t.Fatalf("unexpected receipt: %s", gateway.receipt)
	}
	if order.Status != "created" {
		t.Fatalf("unexpected order status: %s", order.Status)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateOrderRequiresPaper(t *testing.T) {
	gormDB, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewPaymentService(gormDB, &fakeGateway{})
	_, err := service.CreateOrder(0, 150)

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestVerifyPaymentMarksPaperPaid(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "topsecret")

	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `papers` SET `payment_status`=\\? WHERE id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewPaymentService(gormDB, &fakeGateway{})

	sig := signRazorpay("order_1", "pay_1", "topsecret")
	if err := service.VerifyPayment("order_1", "pay_1", sig, 12); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "topsecret")

	gormDB, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewPaymentService(gormDB, &fakeGateway{})

	err := service.VerifyPayment("order_1", "pay_1", "deadbeef", 12)

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
