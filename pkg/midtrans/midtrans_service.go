package midtrans

import (
	"QR-Ordering-Backend/domain"
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

const (
	StatusSettlement = "settlement"
	StatusCapture    = "capture"
	FraudAccept      = "accept"
)

type (
	MidtransService interface {
		CreateCheckout(ctx context.Context, gatewayRef string, amount int64, email string) (string, string, error)
		CheckTransaction(ctx context.Context, gatewayRef string) (*domain.GatewayStatus, error)
	}

	midtransService struct {
		snapClient snap.Client
		coreClient coreapi.Client
	}
)

func NewMidtransService(serverKey string, isProd bool) MidtransService {
	env := midtrans.Sandbox
	if isProd {
		env = midtrans.Production
	}
	s := &midtransService{}
	s.snapClient.New(serverKey, env)
	s.coreClient.New(serverKey, env)
	return s
}

func (s *midtransService) CreateCheckout(ctx context.Context, gatewayRef string, amount int64, email string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  gatewayRef,
			GrossAmt: amount,
		},
	}
	if email != "" {
		req.CustomerDetail = &midtrans.CustomerDetails{Email: email}
	}

	resp, mErr := s.snapClient.CreateTransaction(req)
	if mErr != nil {
		return "", "", fmt.Errorf("%w: %s", domain.ErrPaymentFailed, mErr.Error())
	}
	return resp.Token, resp.RedirectURL, nil
}

// CheckTransaction asks Midtrans for the authoritative state of a
// transaction instead of trusting the notification body.
func (s *midtransService) CheckTransaction(ctx context.Context, gatewayRef string) (*domain.GatewayStatus, error) {
	resp, mErr := s.coreClient.CheckTransaction(gatewayRef)
	if mErr != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPaymentFailed, mErr.Error())
	}
	gross, err := strconv.ParseFloat(resp.GrossAmount, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid gross amount %q: %w", resp.GrossAmount, err)
	}
	return &domain.GatewayStatus{
		OrderRef:      resp.OrderID,
		TransactionID: resp.TransactionID,
		Status:        resp.TransactionStatus,
		FraudStatus:   resp.FraudStatus,
		Amount:        int64(math.Round(gross)),
	}, nil
}

// IsPaid reports whether a verified status means the money has arrived.
func IsPaid(status *domain.GatewayStatus) bool {
	switch status.Status {
	case StatusSettlement:
		return true
	case StatusCapture:
		return status.FraudStatus == "" || status.FraudStatus == FraudAccept
	}
	return false
}
