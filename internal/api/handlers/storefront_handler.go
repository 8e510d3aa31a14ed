package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/saydulla27/foodapp-frontend/internal/backend"
	"github.com/saydulla27/foodapp-frontend/internal/cart"
	"github.com/saydulla27/foodapp-frontend/internal/checkout"
	"github.com/saydulla27/foodapp-frontend/internal/events"
	"github.com/saydulla27/foodapp-frontend/internal/models"
	"github.com/saydulla27/foodapp-frontend/internal/reports"
)

// --- Request / Response DTOs ---

type CreateSessionRequest struct {
	CompanyID int64  `json:"companyId"`
	InitData  string `json:"initData,omitempty"`
}

type SessionState struct {
	SessionID       string              `json:"sessionId"`
	Page            checkout.Page       `json:"page"`
	Company         models.Company      `json:"company"`
	CategoryID      int64               `json:"categoryId"`
	Totals          cart.Totals         `json:"totals"`
	LocationPending bool                `json:"locationPending"`
	LocationDenied  bool                `json:"locationDenied"`
	HasLocation     bool                `json:"hasLocation"`
	Result          *models.OrderResult `json:"result,omitempty"`
}

type AdjustRequest struct {
	ProductID int64 `json:"productId"`
	Delta     int   `json:"delta"`
}

type NavigateRequest struct {
	Page checkout.Page `json:"page"`
}

type SelectCategoryRequest struct {
	CategoryID int64 `json:"categoryId"`
}

type CheckoutInputRequest struct {
	Phone         *string               `json:"phone,omitempty"`
	PaymentMethod *models.PaymentMethod `json:"paymentMethod,omitempty"`
}

type LocationResultRequest struct {
	Token  string   `json:"token"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
	Denied bool     `json:"denied,omitempty"`
}

// --- Handler struct & constructor ---

type StorefrontHandler struct {
	sessions  *checkout.Manager
	store     cart.Store
	client    *backend.Client
	publisher events.Publisher
}

func NewStorefrontHandler(sessions *checkout.Manager, store cart.Store, client *backend.Client, publisher events.Publisher) *StorefrontHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &StorefrontHandler{
		sessions:  sessions,
		store:     store,
		client:    client,
		publisher: publisher,
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (h *StorefrontHandler) flow(w http.ResponseWriter, r *http.Request) (string, *checkout.Flow, bool) {
	id := chi.URLParam(r, "sessionID")
	f, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session_not_found")
		return "", nil, false
	}
	return id, f, true
}

func sessionState(id string, f *checkout.Flow) SessionState {
	lat, lng := f.Location()
	return SessionState{
		SessionID:       id,
		Page:            f.Page(),
		Company:         f.Company(),
		CategoryID:      f.CategoryID(),
		Totals:          f.Totals(),
		LocationPending: f.LocationPending(),
		LocationDenied:  f.LocationDenied(),
		HasLocation:     lat != nil && lng != nil,
		Result:          f.Result(),
	}
}

// mapFlowError translates flow errors to HTTP responses.
func mapFlowError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "cart_empty")
	case errors.Is(err, checkout.ErrPhoneRequired):
		writeError(w, http.StatusBadRequest, "phone_required")
	case errors.Is(err, checkout.ErrLocationRequired):
		writeError(w, http.StatusBadRequest, "location_required")
	case errors.Is(err, checkout.ErrInvalidPayment):
		writeError(w, http.StatusBadRequest, "invalid_payment_method")
	case errors.Is(err, checkout.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "unknown_category")
	case errors.Is(err, cart.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "insufficient_stock")
	case errors.Is(err, checkout.ErrStaleLocation):
		writeError(w, http.StatusConflict, "stale_location_result")
	case errors.Is(err, checkout.ErrBadTransition):
		writeError(w, http.StatusConflict, "transition_not_allowed")
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, apiErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

// --- Handlers ---

// CreateSession handles POST /store/sessions: fetches the tenant profile
// and menu from the backend, loads the persisted cart, and opens a flow.
func (h *StorefrontHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if req.CompanyID <= 0 {
		writeError(w, http.StatusBadRequest, "companyId required")
		return
	}

	ctx := r.Context()
	company, err := h.client.GetCompany(ctx, req.CompanyID)
	if err != nil {
		mapFlowError(w, err)
		return
	}
	menu, err := h.client.GetMenu(ctx, req.CompanyID)
	if err != nil {
		mapFlowError(w, err)
		return
	}

	f, err := checkout.NewFlow(ctx, company, menu, h.store, h.client, req.InitData)
	if err != nil {
		mapFlowError(w, err)
		return
	}
	id := h.sessions.Put(f)
	writeJSON(w, http.StatusCreated, sessionState(id, f))
}

// GetState handles GET /store/sessions/{sessionID}.
func (h *StorefrontHandler) GetState(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, f))
}

// GetMenu handles GET /store/sessions/{sessionID}/menu: the full category
// list plus the products of the selected category.
func (h *StorefrontHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": f.Menu().Categories,
		"categoryId": f.CategoryID(),
		"products":   f.VisibleProducts(),
	})
}

// SelectCategory handles POST /store/sessions/{sessionID}/category.
func (h *StorefrontHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req SelectCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if err := f.SelectCategory(req.CategoryID); err != nil {
		mapFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categoryId": f.CategoryID(),
		"products":   f.VisibleProducts(),
	})
}

// AdjustCart handles POST /store/sessions/{sessionID}/cart/adjust.
func (h *StorefrontHandler) AdjustCart(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if err := f.Adjust(r.Context(), req.ProductID, req.Delta); err != nil {
		mapFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, f))
}

// ClearCart handles POST /store/sessions/{sessionID}/cart/clear.
func (h *StorefrontHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.ClearCart(r.Context()); err != nil {
		mapFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, f))
}

// Navigate handles POST /store/sessions/{sessionID}/page.
func (h *StorefrontHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if err := f.Navigate(req.Page); err != nil {
		mapFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, f))
}

// SetCheckoutInput handles POST /store/sessions/{sessionID}/checkout with
// partial phone / payment method updates.
func (h *StorefrontHandler) SetCheckoutInput(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req CheckoutInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if req.Phone != nil {
		if err := f.SetPhone(*req.Phone); err != nil {
			mapFlowError(w, err)
			return
		}
	}
	if req.PaymentMethod != nil {
		if err := f.SetPaymentMethod(*req.PaymentMethod); err != nil {
			mapFlowError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, sessionState(id, f))
}

// BeginLocation handles POST /store/sessions/{sessionID}/location/request.
func (h *StorefrontHandler) BeginLocation(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	token, err := f.BeginLocationRequest()
	if err != nil {
		mapFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CompleteLocation handles POST /store/sessions/{sessionID}/location/result.
func (h *StorefrontHandler) CompleteLocation(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req LocationResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	var err error
	if req.Denied {
		err = f.FailLocationRequest(req.Token)
	} else if req.Lat == nil || req.Lng == nil {
		writeError(w, http.StatusBadRequest, "lat and lng required")
		return
	} else {
		err = f.CompleteLocationRequest(req.Token, *req.Lat, *req.Lng)
	}
	if err != nil {
		mapFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, f))
}

// Submit handles POST /store/sessions/{sessionID}/submit.
func (h *StorefrontHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}

	// capture the composed items before submission clears the cart
	totals := f.Totals()

	res, err := f.Submit(r.Context())
	if err != nil {
		mapFlowError(w, err)
		return
	}

	evt := events.OrderPlaced{
		OrderID:     res.ID,
		CompanyID:   f.TenantID(),
		TotalAmount: res.TotalAmount,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	for _, line := range totals.Items {
		evt.Items = append(evt.Items, models.OrderItem{ProductID: line.Product.ID, Qty: line.Qty})
	}
	// the order is placed either way; a broker outage only costs the event
	if err := h.publisher.PublishOrderPlaced(context.WithoutCancel(r.Context()), evt); err != nil {
		log.Printf("publish order placed: %v", err)
	}

	writeJSON(w, http.StatusOK, sessionState(id, f))
}

// Reset handles POST /store/sessions/{sessionID}/reset ("new order").
func (h *StorefrontHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.Reset(); err != nil {
		mapFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, f))
}

// Reports handles GET /admin/reports?range=: aggregates the admin order
// listing fetched from the backend.
func (h *StorefrontHandler) Reports(w http.ResponseWriter, r *http.Request) {
	rng := reports.ParseRange(r.URL.Query().Get("range"))

	orders, err := h.client.ListOrders(r.Context())
	if err != nil {
		mapFlowError(w, err)
		return
	}
	filtered := reports.Filter(orders, rng, time.Now())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"range":   rng,
		"summary": reports.Summarize(filtered),
	})
}
