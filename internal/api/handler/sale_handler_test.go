package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
)

type stubSaleService struct {
	recordFn func(ctx context.Context, productID int64, quantity int) (*ports.SaleResult, error)
	getFn    func(ctx context.Context, id int64) (*domain.Sale, error)
	listFn   func(ctx context.Context) ([]*domain.Sale, error)
}

func (s *stubSaleService) Record(ctx context.Context, productID int64, quantity int) (*ports.SaleResult, error) {
	return s.recordFn(ctx, productID, quantity)
}

func (s *stubSaleService) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	return s.getFn(ctx, id)
}

func (s *stubSaleService) List(ctx context.Context) ([]*domain.Sale, error) {
	return s.listFn(ctx)
}

func TestSaleHandler_Create_Recorded(t *testing.T) {
	e := newEcho()
	stub := &stubSaleService{
		recordFn: func(ctx context.Context, productID int64, quantity int) (*ports.SaleResult, error) {
			if productID != 1 || quantity != 3 {
				t.Fatalf("unexpected args: %d %d", productID, quantity)
			}
			return &ports.SaleResult{
				Outcome: ports.OutcomeRecorded,
				Sale:    &domain.Sale{ID: 1, ProductID: 1, ProductName: "Pen", Quantity: 3, UnitPrice: 2.5, Total: 7.5},
			}, nil
		},
	}
	handler := NewSaleHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/sales", `{"product_id":1,"quantity":3}`), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["total"] != 7.5 || resp["quantity"] != float64(3) {
		t.Fatalf("unexpected sale payload: %+v", resp)
	}
}

func TestSaleHandler_Create_InsufficientStock(t *testing.T) {
	e := newEcho()
	stub := &stubSaleService{
		recordFn: func(ctx context.Context, productID int64, quantity int) (*ports.SaleResult, error) {
			return &ports.SaleResult{Outcome: ports.OutcomeInsufficientStock, Available: 7}, nil
		},
	}
	handler := NewSaleHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/sales", `{"product_id":1,"quantity":100}`), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["message"] != "Insufficient stock" || resp["available"] != float64(7) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSaleHandler_Create_UnknownProduct(t *testing.T) {
	e := newEcho()
	stub := &stubSaleService{
		recordFn: func(ctx context.Context, productID int64, quantity int) (*ports.SaleResult, error) {
			return nil, domain.NewValidationError("product_id", "references a non-existent product")
		},
	}
	handler := NewSaleHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/sales", `{"product_id":99,"quantity":1}`), httptest.NewRecorder())

	assertValidation(t, handler.Create(c), "product_id")
}

func TestSaleHandler_Create_MissingQuantity(t *testing.T) {
	e := newEcho()
	handler := NewSaleHandler(&stubSaleService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/sales", `{"product_id":1}`), httptest.NewRecorder())

	assertValidation(t, handler.Create(c), "quantity")
}

func TestSaleHandler_List_Empty(t *testing.T) {
	e := newEcho()
	stub := &stubSaleService{
		listFn: func(ctx context.Context) ([]*domain.Sale, error) { return []*domain.Sale{}, nil },
	}
	handler := NewSaleHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil), rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode(t, rec)["message"] != "No sale record(s) available" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSaleHandler_Get(t *testing.T) {
	e := newEcho()
	stub := &stubSaleService{
		getFn: func(ctx context.Context, id int64) (*domain.Sale, error) {
			if id == 1 {
				return &domain.Sale{ID: 1, Total: 7.5}, nil
			}
			return nil, domain.ErrSaleNotFound
		},
	}
	handler := NewSaleHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	sale, ok := decode(t, rec)["sale"].(map[string]any)
	if !ok || sale["total"] != 7.5 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := handler.Get(c); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
