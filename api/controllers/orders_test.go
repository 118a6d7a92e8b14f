package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akazakov/shoplite-backend/api/middleware"
	ordersvc "github.com/akazakov/shoplite-backend/internal/orders"
	"github.com/akazakov/shoplite-backend/pkg/enums"
	pkgerrors "github.com/akazakov/shoplite-backend/pkg/errors"
)

type stubOrdersService struct {
	summary   *ordersvc.Summary
	history   []ordersvc.HistoryEntry
	err       error
	lastActor ordersvc.Actor
	lastState enums.OrderStatus
}

func (s *stubOrdersService) Checkout(ctx context.Context, userID uuid.UUID) (*ordersvc.Summary, error) {
	return s.summary, s.err
}

func (s *stubOrdersService) Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus, actor ordersvc.Actor) (*ordersvc.Summary, error) {
	s.lastActor = actor
	s.lastState = target
	return s.summary, s.err
}

func (s *stubOrdersService) Get(ctx context.Context, orderID uuid.UUID, actor ordersvc.Actor) (*ordersvc.Summary, error) {
	s.lastActor = actor
	return s.summary, s.err
}

func (s *stubOrdersService) History(ctx context.Context, orderID uuid.UUID, actor ordersvc.Actor) ([]ordersvc.HistoryEntry, error) {
	s.lastActor = actor
	return s.history, s.err
}

func (s *stubOrdersService) ListRecent(ctx context.Context, userID uuid.UUID) ([]ordersvc.Summary, error) {
	if s.summary == nil {
		return nil, s.err
	}
	return []ordersvc.Summary{*s.summary}, s.err
}

func (s *stubOrdersService) ListAll(ctx context.Context) ([]ordersvc.Summary, error) {
	if s.summary == nil {
		return nil, s.err
	}
	return []ordersvc.Summary{*s.summary}, s.err
}

func orderFixture() *ordersvc.Summary {
	return &ordersvc.Summary{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Status:    enums.OrderStatusPending,
		TotalCost: decimal.NewFromInt(42),
	}
}

func TestCheckoutCreatesOrder(t *testing.T) {
	summary := orderFixture()
	handler := Checkout(&stubOrdersService{summary: summary}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", ""))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var envelope struct {
		Data ordersvc.Summary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != summary.ID {
		t.Fatalf("unexpected order id: %s", envelope.Data.ID)
	}
}

func TestCheckoutSurfacesEmptyCart(t *testing.T) {
	handler := Checkout(&stubOrdersService{err: pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", ""))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCheckoutRequiresUser(t *testing.T) {
	handler := Checkout(&stubOrdersService{}, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestOrderTransitionParsesStatus(t *testing.T) {
	svc := &stubOrdersService{summary: orderFixture()}
	handler := OrderTransition(svc, nil)

	orderID := uuid.New()
	req := authedRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/transition", `{"status":"paid"}`)
	req = req.WithContext(middleware.WithRoles(req.Context(), []string{enums.RoleAdmin.String()}))
	req = withURLParam(req, "orderID", orderID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastState != enums.OrderStatusPaid {
		t.Fatalf("expected paid got %s", svc.lastState)
	}
	if !svc.lastActor.IsAdmin {
		t.Fatal("expected admin actor")
	}
}

func TestOrderTransitionRejectsUnknownStatus(t *testing.T) {
	handler := OrderTransition(&stubOrdersService{}, nil)

	orderID := uuid.New()
	req := withURLParam(authedRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/transition", `{"status":"teleported"}`), "orderID", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrderTransitionSurfacesIllegalTransition(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeIllegalTransition, "cannot move order").WithDetails(map[string]any{"from": "delivered", "to": "paid"})}
	handler := OrderTransition(svc, nil)

	orderID := uuid.New()
	req := withURLParam(authedRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/transition", `{"status":"paid"}`), "orderID", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeIllegalTransition) {
		t.Fatalf("expected ILLEGAL_TRANSITION got %s", envelope.Error.Code)
	}
	if envelope.Error.Details["from"] != "delivered" {
		t.Fatalf("expected transition details, got %v", envelope.Error.Details)
	}
}

func TestOrderGetForbiddenForStranger(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeForbidden, "not your order")}
	handler := OrderGet(svc, nil)

	orderID := uuid.New()
	req := withURLParam(authedRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), ""), "orderID", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestOrdersRecentReturnsList(t *testing.T) {
	handler := OrdersRecent(&stubOrdersService{summary: orderFixture()}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/orders/recent", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data []ordersvc.Summary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected one order got %d", len(envelope.Data))
	}
}
