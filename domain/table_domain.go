package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGenerateQR  = "table QR code generated successfully"
	MessageSuccessGetTables   = "tables retrieved successfully"
	MessageSuccessGetSession  = "table session retrieved successfully"
	MessageSuccessCallWaiter  = "waiter has been notified"
	MessageFailedGenerateQR   = "failed to generate table QR code"
	MessageFailedGetTables    = "failed to retrieve tables"
	MessageFailedGetSession   = "failed to retrieve table session"
	MessageFailedCallWaiter   = "failed to call waiter"
	MessageFailedTableSession = "invalid table session"

	ErrTableNotFound     = fmt.Errorf("table %w", ErrNotFound)
	ErrTableInactive     = fmt.Errorf("table is inactive: %w", ErrForbidden)
	ErrQRTokenMissing    = fmt.Errorf("table token is missing: %w", ErrUnauthorized)
	ErrQRTokenRevoked    = fmt.Errorf("table token has been replaced: %w", ErrUnauthorized)
	ErrWaiterCallTooSoon = fmt.Errorf("waiter was called recently: %w", ErrTooManyRequests)
)

type (
	TableResponse struct {
		ID            string     `json:"id"`
		Number        string     `json:"number"`
		Capacity      int        `json:"capacity"`
		Status        string     `json:"status"`
		HasQR         bool       `json:"has_qr"`
		QRImageURL    string     `json:"qr_image_url,omitempty"`
		QRGeneratedAt *time.Time `json:"qr_generated_at,omitempty"`
	}

	TableQRResponse struct {
		TableID   string `json:"table_id"`
		Number    string `json:"number"`
		SessionID string `json:"session_id"`
		Token     string `json:"token"`
		MenuURL   string `json:"menu_url"`
		ImageURL  string `json:"image_url,omitempty"`
	}

	TableSessionResponse struct {
		TableID   string `json:"table_id"`
		Number    string `json:"number"`
		Capacity  int    `json:"capacity"`
		SessionID string `json:"session_id"`
	}

	WaiterCallRequest struct {
		Reason string `json:"reason" validate:"max=255"`
	}
)
