package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessRecordPayment  = "payment recorded successfully"
	MessageSuccessGetPayments    = "payments retrieved successfully"
	MessageSuccessCreateCheckout = "payment checkout created successfully"
	MessageSuccessWebhook        = "payment notification processed"
	MessageFailedRecordPayment   = "failed to record payment"
	MessageFailedGetPayments     = "failed to retrieve payments"
	MessageFailedCreateCheckout  = "failed to create payment checkout"
	MessageFailedWebhook         = "failed to process payment notification"

	ErrPaymentExceedsBalance = fmt.Errorf("payment exceeds outstanding balance: %w", ErrBadRequest)
	ErrOrderAlreadyPaid      = fmt.Errorf("order is already fully paid: %w", ErrConflict)
	ErrPaymentOrderClosed    = fmt.Errorf("order does not accept payments: %w", ErrInvalidTransition)
	ErrPaymentFailed         = fmt.Errorf("payment processing failed: %w", ErrUnavailable)
	ErrGatewayOrderInvalid   = fmt.Errorf("gateway order reference %w", ErrNotFound)
	ErrPaymentGatewayOff     = fmt.Errorf("payment gateway is not configured: %w", ErrUnavailable)
)

type (
	RecordPaymentRequest struct {
		Amount       int64  `json:"amount" validate:"required,gt=0"`
		Method       string `json:"method" validate:"required,oneof=CASH CARD"`
		Reference    string `json:"reference" validate:"max=100"`
		ReceiptEmail string `json:"receipt_email" validate:"omitempty,email"`
	}

	OnlinePaymentRequest struct {
		Email string `json:"email" validate:"omitempty,email"`
	}

	MidtransNotification struct {
		OrderID           string `json:"order_id"`
		TransactionID     string `json:"transaction_id"`
		TransactionStatus string `json:"transaction_status"`
	}

	// GatewayStatus is the verified state of a gateway transaction.
	GatewayStatus struct {
		OrderRef      string
		TransactionID string
		Status        string
		FraudStatus   string
		Amount        int64
	}

	CheckoutResponse struct {
		OrderID     string `json:"order_id"`
		GatewayRef  string `json:"gateway_ref"`
		Amount      int64  `json:"amount"`
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
	}

	PaymentResponse struct {
		ID        string    `json:"id"`
		OrderID   string    `json:"order_id"`
		Amount    int64     `json:"amount"`
		Method    string    `json:"method"`
		Reference string    `json:"reference,omitempty"`
		PaidAt    time.Time `json:"paid_at"`
	}

	PaymentSummary struct {
		OrderID     string            `json:"order_id"`
		OrderStatus string            `json:"order_status"`
		Total       int64             `json:"total"`
		Paid        int64             `json:"paid"`
		Outstanding int64             `json:"outstanding"`
		Payments    []PaymentResponse `json:"payments"`
	}
)
