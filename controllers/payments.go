package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-review-api/services"
)

type CreateOrderRequest struct {
	PaperID uint    `json:"paperId"`
	Amount  float64 `json:"amount"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
	PaperID           uint   `json:"paperId"`
}

// GetPaymentKey exposes the public gateway key id for checkout clients.
func GetPaymentKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"key": services.NewPaymentService(nil, nil).KeyID()})
}

// CreatePaymentOrder opens a payable order for a paper's submission fee.
func CreatePaymentOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	order, err := services.NewPaymentService(nil, nil).CreateOrder(req.PaperID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"order": order})
}

// VerifyPayment checks the gateway signature and marks the paper paid.
func VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	err := services.NewPaymentService(nil, nil).VerifyPayment(
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, req.PaperID)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, gin.H{
		"message":   "Payment verified successfully",
		"orderId":   req.RazorpayOrderID,
		"paymentId": req.RazorpayPaymentID,
	})
}
