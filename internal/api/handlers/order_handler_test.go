package handlers

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/internal/api/presenters"
	"QR-Ordering-Backend/pkg/order"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderService implements only what the handlers under test call.
type stubOrderService struct {
	order.OrderService
	acceptErr  error
	tableID    string
	lastStatus string
	lastReason string
}

func (s *stubOrderService) AcceptOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error) {
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return &domain.OrderResponse{ID: orderID, Status: "PREPARING"}, nil
}

func (s *stubOrderService) GetOrderForTable(ctx context.Context, orderID, tableID string) (*domain.OrderResponse, error) {
	if tableID != s.tableID {
		return nil, domain.ErrOrderNotForThisTable
	}
	return &domain.OrderResponse{ID: orderID, TableID: tableID}, nil
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID string, req domain.UpdateOrderStatusRequest) (*domain.OrderResponse, error) {
	s.lastStatus = req.Status
	s.lastReason = req.Reason
	return &domain.OrderResponse{ID: orderID, Status: req.Status}, nil
}

func newOrderApp(svc order.OrderService, tableID string) *fiber.App {
	h := NewOrderHandler(svc, validator.New())
	app := fiber.New()
	app.Patch("/orders/:id/accept", h.AcceptOrder)
	app.Patch("/orders/:id/status", h.UpdateStatus)
	app.Get("/orders/:id", func(c *fiber.Ctx) error {
		c.Locals("table_id", tableID)
		return c.Next()
	}, h.GetOrder)
	return app
}

func decodeResponse(t *testing.T, body io.Reader) presenters.Response {
	t.Helper()
	var resp presenters.Response
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestAcceptOrderHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"accepted", nil, fiber.StatusOK},
		{"notFound", domain.ErrOrderNotFound, fiber.StatusNotFound},
		{"lostRace", domain.ErrOrderStatusChanged, fiber.StatusConflict},
		{"alreadyClosed", domain.ErrOrderClosed, fiber.StatusConflict},
		{"databaseDown", errors.New("driver: bad connection"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newOrderApp(&stubOrderService{acceptErr: tt.err}, "")
			res, err := app.Test(httptest.NewRequest(fiber.MethodPatch, "/orders/o1/accept", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.StatusCode)

			body := decodeResponse(t, res.Body)
			assert.Equal(t, tt.err == nil, body.Status)
			if tt.err != nil {
				assert.Equal(t, domain.MessageFailedAcceptOrder, body.Message)
				assert.Equal(t, tt.err.Error(), body.Error)
			}
		})
	}
}

func TestGetOrderHandlerScopesToTable(t *testing.T) {
	svc := &stubOrderService{tableID: "t1"}

	res, err := newOrderApp(svc, "t1").Test(httptest.NewRequest(fiber.MethodGet, "/orders/o1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = newOrderApp(svc, "t2").Test(httptest.NewRequest(fiber.MethodGet, "/orders/o1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
}

func TestUpdateStatusHandlerValidatesBody(t *testing.T) {
	svc := &stubOrderService{}
	app := newOrderApp(svc, "")

	send := func(body string) int {
		req := httptest.NewRequest(fiber.MethodPatch, "/orders/o1/status", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		res, err := app.Test(req)
		require.NoError(t, err)
		return res.StatusCode
	}

	assert.Equal(t, fiber.StatusBadRequest, send(`{"status":"EATEN"}`))
	assert.Equal(t, fiber.StatusBadRequest, send(`{}`))
	assert.Empty(t, svc.lastStatus)

	assert.Equal(t, fiber.StatusOK, send(`{"status":"CANCELLED","reason":"kitchen closed"}`))
	assert.Equal(t, "CANCELLED", svc.lastStatus)
	assert.Equal(t, "kitchen closed", svc.lastReason)
}
