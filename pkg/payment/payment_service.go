package payment

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"QR-Ordering-Backend/pkg/midtrans"
	"QR-Ordering-Backend/pkg/order"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const gatewayRefPrefix = "ORD-"

type (
	PaymentService interface {
		RecordPayment(ctx context.Context, orderID string, req domain.RecordPaymentRequest, staffID string) (*domain.PaymentResponse, error)
		GetSummary(ctx context.Context, orderID string) (*domain.PaymentSummary, error)
		GetSummaryForTable(ctx context.Context, orderID, tableID string) (*domain.PaymentSummary, error)
		CreateOnlineCheckout(ctx context.Context, orderID, tableID string, req domain.OnlinePaymentRequest) (*domain.CheckoutResponse, error)
		HandleMidtransNotification(ctx context.Context, notification domain.MidtransNotification) error
	}

	Notifier interface {
		PaymentCompleted(orderID string, payment *domain.PaymentResponse)
	}

	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	paymentService struct {
		paymentRepository PaymentRepository
		orderService      order.OrderService
		gateway           midtrans.MidtransService
		notifier          Notifier
		mailer            Mailer
		now               func() time.Time
	}
)

// NewPaymentService accepts a nil gateway (online checkout disabled) and a
// nil mailer (no receipts).
func NewPaymentService(
	paymentRepository PaymentRepository,
	orderService order.OrderService,
	gateway midtrans.MidtransService,
	notifier Notifier,
	mailer Mailer,
) PaymentService {
	return &paymentService{
		paymentRepository: paymentRepository,
		orderService:      orderService,
		gateway:           gateway,
		notifier:          notifier,
		mailer:            mailer,
		now:               time.Now,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, orderID string, req domain.RecordPaymentRequest, staffID string) (*domain.PaymentResponse, error) {
	o, err := s.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if entities.OrderStatus(o.Status).IsTerminal() {
		return nil, domain.ErrPaymentOrderClosed
	}

	orderUUID := uuid.MustParse(o.ID)
	paid, err := s.paymentRepository.SumPaid(ctx, orderUUID)
	if err != nil {
		return nil, err
	}
	outstanding := o.TotalAmount - paid
	if outstanding <= 0 {
		return nil, domain.ErrOrderAlreadyPaid
	}
	if req.Amount > outstanding {
		return nil, fmt.Errorf("%w: outstanding %d", domain.ErrPaymentExceedsBalance, outstanding)
	}

	payment := &entities.Payment{
		ID:      uuid.New(),
		OrderID: orderUUID,
		Amount:  req.Amount,
		Method:  entities.PaymentMethod(req.Method),
		PaidAt:  s.now(),
	}
	if req.Reference != "" {
		ref := req.Reference
		payment.Reference = &ref
	}
	if staffUUID, err := uuid.Parse(staffID); err == nil {
		payment.ReceivedBy = &staffUUID
	}

	if err := s.paymentRepository.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	resp := toPaymentResponse(payment)
	s.afterPayment(ctx, o, paid+payment.Amount, resp, req.ReceiptEmail)
	return resp, nil
}

// afterPayment runs once the payment row is committed. Nothing here can
// undo the payment.
func (s *paymentService) afterPayment(ctx context.Context, o *domain.OrderResponse, paid int64, resp *domain.PaymentResponse, receiptEmail string) {
	s.notifier.PaymentCompleted(o.ID, resp)
	log.Infow("payment recorded", "order_id", o.ID, "amount", resp.Amount, "method", resp.Method)

	if paid >= o.TotalAmount && o.Status == string(entities.OrderServed) {
		if _, err := s.orderService.CompleteOrder(ctx, o.ID); err != nil {
			log.Warnw("failed to complete paid order", "order_id", o.ID, "error", err)
		}
	}

	if receiptEmail != "" && s.mailer != nil {
		body := receiptBody(o, resp, paid)
		if err := s.mailer.SendMail(receiptEmail, "Payment receipt", body); err != nil {
			log.Warnw("failed to send payment receipt", "order_id", o.ID, "error", err)
		}
	}
}

func (s *paymentService) GetSummary(ctx context.Context, orderID string) (*domain.PaymentSummary, error) {
	o, err := s.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, o)
}

func (s *paymentService) GetSummaryForTable(ctx context.Context, orderID, tableID string) (*domain.PaymentSummary, error) {
	o, err := s.orderService.GetOrderForTable(ctx, orderID, tableID)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, o)
}

func (s *paymentService) summary(ctx context.Context, o *domain.OrderResponse) (*domain.PaymentSummary, error) {
	payments, err := s.paymentRepository.GetPaymentsByOrder(ctx, uuid.MustParse(o.ID))
	if err != nil {
		return nil, err
	}
	summary := &domain.PaymentSummary{
		OrderID:     o.ID,
		OrderStatus: o.Status,
		Total:       o.TotalAmount,
		Payments:    make([]domain.PaymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		summary.Paid += p.Amount
		summary.Payments = append(summary.Payments, *toPaymentResponse(p))
	}
	summary.Outstanding = summary.Total - summary.Paid
	if summary.Outstanding < 0 {
		summary.Outstanding = 0
	}
	return summary, nil
}

func (s *paymentService) CreateOnlineCheckout(ctx context.Context, orderID, tableID string, req domain.OnlinePaymentRequest) (*domain.CheckoutResponse, error) {
	if s.gateway == nil {
		return nil, domain.ErrPaymentGatewayOff
	}
	summary, err := s.GetSummaryForTable(ctx, orderID, tableID)
	if err != nil {
		return nil, err
	}
	if entities.OrderStatus(summary.OrderStatus).IsTerminal() {
		return nil, domain.ErrPaymentOrderClosed
	}
	if summary.Outstanding <= 0 {
		return nil, domain.ErrOrderAlreadyPaid
	}

	ref := GatewayRef(summary.OrderID, s.now())
	token, redirectURL, err := s.gateway.CreateCheckout(ctx, ref, summary.Outstanding, req.Email)
	if err != nil {
		return nil, err
	}
	return &domain.CheckoutResponse{
		OrderID:     summary.OrderID,
		GatewayRef:  ref,
		Amount:      summary.Outstanding,
		Token:       token,
		RedirectURL: redirectURL,
	}, nil
}

// HandleMidtransNotification re-reads the transaction from Midtrans and
// appends a payment once per gateway transaction id.
func (s *paymentService) HandleMidtransNotification(ctx context.Context, notification domain.MidtransNotification) error {
	if s.gateway == nil {
		return domain.ErrPaymentGatewayOff
	}
	orderID, err := ParseGatewayRef(notification.OrderID)
	if err != nil {
		return err
	}

	status, err := s.gateway.CheckTransaction(ctx, notification.OrderID)
	if err != nil {
		return err
	}
	if !midtrans.IsPaid(status) {
		log.Infow("midtrans transaction not settled", "gateway_ref", notification.OrderID, "status", status.Status)
		return nil
	}

	exists, err := s.paymentRepository.ExistsByReference(ctx, status.TransactionID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	o, err := s.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	paid, err := s.paymentRepository.SumPaid(ctx, uuid.MustParse(o.ID))
	if err != nil {
		return err
	}

	ref := status.TransactionID
	payment := &entities.Payment{
		ID:        uuid.New(),
		OrderID:   uuid.MustParse(o.ID),
		Amount:    status.Amount,
		Method:    entities.PaymentMidtrans,
		Reference: &ref,
		PaidAt:    s.now(),
	}
	if err := s.paymentRepository.CreatePayment(ctx, payment); err != nil {
		return err
	}
	s.afterPayment(ctx, o, paid+payment.Amount, toPaymentResponse(payment), "")
	return nil
}

// GatewayRef builds a unique Midtrans order id for one checkout attempt.
func GatewayRef(orderID string, at time.Time) string {
	return fmt.Sprintf("%s%s-%d", gatewayRefPrefix, orderID, at.Unix())
}

func ParseGatewayRef(ref string) (string, error) {
	rest := strings.TrimPrefix(ref, gatewayRefPrefix)
	if rest == ref || len(rest) < 36 {
		return "", domain.ErrGatewayOrderInvalid
	}
	id, err := uuid.Parse(rest[:36])
	if err != nil {
		return "", domain.ErrGatewayOrderInvalid
	}
	return id.String(), nil
}

func toPaymentResponse(p *entities.Payment) *domain.PaymentResponse {
	resp := &domain.PaymentResponse{
		ID:      p.ID.String(),
		OrderID: p.OrderID.String(),
		Amount:  p.Amount,
		Method:  string(p.Method),
		PaidAt:  p.PaidAt,
	}
	if p.Reference != nil {
		resp.Reference = *p.Reference
	}
	return resp
}

func receiptBody(o *domain.OrderResponse, p *domain.PaymentResponse, paid int64) string {
	var b strings.Builder
	b.WriteString("<h2>Thank you for dining with us</h2>")
	fmt.Fprintf(&b, "<p>Order <b>%s</b>", o.ID)
	if o.TableNumber != "" {
		fmt.Fprintf(&b, " at table %s", o.TableNumber)
	}
	b.WriteString("</p><table>")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "<tr><td>%dx %s</td><td>%d</td></tr>", item.Quantity, item.Name, item.LineTotal)
	}
	fmt.Fprintf(&b, "<tr><td>Tax</td><td>%d</td></tr>", o.TaxAmount)
	fmt.Fprintf(&b, "<tr><td><b>Total</b></td><td><b>%d</b></td></tr></table>", o.TotalAmount)
	fmt.Fprintf(&b, "<p>Received %d by %s. Remaining balance: %d.</p>", p.Amount, p.Method, max(o.TotalAmount-paid, 0))
	return b.String()
}
