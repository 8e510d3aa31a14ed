package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/saydulla27/foodapp-frontend/internal/cart"
	"github.com/saydulla27/foodapp-frontend/internal/catalog"
	"github.com/saydulla27/foodapp-frontend/internal/models"
)

// Page is the storefront page-state. Legal transitions:
//
//	MENU <-> CART -> CHECKOUT -> SUCCESS -> MENU
//
// CHECKOUT can also go back to CART. SUCCESS only leaves through Reset.
type Page string

const (
	PageMenu     Page = "MENU"
	PageCart     Page = "CART"
	PageCheckout Page = "CHECKOUT"
	PageSuccess  Page = "SUCCESS"
)

// Submitter posts a composed order to the backend.
type Submitter interface {
	CreateOrder(ctx context.Context, req models.OrderRequest, initData string) (models.OrderResult, error)
}

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrPhoneRequired    = errors.New("phone number required")
	ErrLocationRequired = errors.New("delivery location required")
	ErrInvalidPayment   = errors.New("unknown payment method")
	ErrBadTransition    = errors.New("transition not allowed")
	ErrUnknownCategory  = errors.New("unknown category")

	// ErrStaleLocation marks a location result whose request was superseded
	// or whose flow already left the checkout page; the result is dropped.
	ErrStaleLocation = errors.New("stale location result")
)

// Flow drives one customer's storefront session: menu browsing, the cart,
// checkout input collection, and order submission. All methods are safe for
// the single-session caller; the mutex only serializes a late async location
// result against user navigation.
type Flow struct {
	mu sync.Mutex

	tenantID  int64
	company   models.Company
	menu      models.Menu
	index     catalog.Index
	store     cart.Store
	submitter Submitter
	initData  string

	page       Page
	categoryID int64
	cart       cart.Cart

	phone   string
	lat     *float64
	lng     *float64
	payment models.PaymentMethod

	locToken  string
	locDenied bool

	result *models.OrderResult
}

// NewFlow starts a session on the MENU page with the tenant's persisted
// cart loaded and the first menu category preselected.
func NewFlow(ctx context.Context, company models.Company, menu models.Menu, store cart.Store, submitter Submitter, initData string) (*Flow, error) {
	c, err := store.Load(ctx, company.ID)
	if err != nil {
		return nil, err
	}

	f := &Flow{
		tenantID:  company.ID,
		company:   company,
		menu:      menu,
		index:     catalog.BuildIndex(menu),
		store:     store,
		submitter: submitter,
		initData:  initData,
		page:      PageMenu,
		cart:      c,
		payment:   models.PaymentCash,
	}
	if len(menu.Categories) > 0 {
		f.categoryID = menu.Categories[0].ID
	}
	return f, nil
}

func (f *Flow) TenantID() int64 {
	return f.tenantID
}

func (f *Flow) Company() models.Company {
	return f.company
}

func (f *Flow) Menu() models.Menu {
	return f.menu
}

func (f *Flow) Page() Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

func (f *Flow) Totals() cart.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cart.Materialize(f.cart, f.index)
}

// Result returns the accepted order after a successful submission, nil
// otherwise.
func (f *Flow) Result() *models.OrderResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

func (f *Flow) CategoryID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categoryID
}

// SelectCategory changes the menu category filter.
func (f *Flow) SelectCategory(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.menu.Categories {
		if c.ID == id {
			f.categoryID = id
			return nil
		}
	}
	return ErrUnknownCategory
}

// VisibleProducts returns the products of the selected category.
func (f *Flow) VisibleProducts() []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return catalog.CategoryProducts(f.menu, f.categoryID)
}

// Adjust applies a quantity delta through the cart reducer and persists the
// result. Quantity controls exist on the MENU and CART pages only.
func (f *Flow) Adjust(ctx context.Context, productID int64, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page != PageMenu && f.page != PageCart {
		return ErrBadTransition
	}
	next, err := cart.Adjust(f.cart, productID, delta, f.index)
	if err != nil {
		return err
	}
	if err := f.store.Save(ctx, f.tenantID, next); err != nil {
		return err
	}
	f.cart = next
	return nil
}

// ClearCart empties the cart and its persisted copy, staying on CART.
func (f *Flow) ClearCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page != PageCart {
		return ErrBadTransition
	}
	if err := f.store.Clear(ctx, f.tenantID); err != nil {
		return err
	}
	f.cart = cart.Cart{}
	return nil
}

// Navigate moves between pages. An empty cart blocks CART -> CHECKOUT, and
// SUCCESS is never a navigation target: it is reached only through Submit.
func (f *Flow) Navigate(to Page) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if to == f.page {
		return nil
	}
	allowed := false
	switch f.page {
	case PageMenu:
		allowed = to == PageCart
	case PageCart:
		if to == PageMenu {
			allowed = true
		}
		if to == PageCheckout {
			if cart.Materialize(f.cart, f.index).TotalQty <= 0 {
				return ErrEmptyCart
			}
			allowed = true
		}
	case PageCheckout:
		allowed = to == PageCart || to == PageMenu
	case PageSuccess:
		// leave only through Reset
	}
	if !allowed {
		return ErrBadTransition
	}
	if f.page == PageCheckout {
		// leaving checkout abandons any in-flight location request
		f.locToken = ""
	}
	f.page = to
	return nil
}

// SetPhone records the customer phone; checkout input only exists on the
// CHECKOUT page.
func (f *Flow) SetPhone(phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page != PageCheckout {
		return ErrBadTransition
	}
	f.phone = phone
	return nil
}

func (f *Flow) SetPaymentMethod(m models.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page != PageCheckout {
		return ErrBadTransition
	}
	if !m.Valid() {
		return ErrInvalidPayment
	}
	f.payment = m
	return nil
}

// BeginLocationRequest starts a user-triggered location acquisition and
// returns its token. A new request supersedes any pending one.
func (f *Flow) BeginLocationRequest() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page != PageCheckout {
		return "", ErrBadTransition
	}
	f.locToken = uuid.NewString()
	f.locDenied = false
	return f.locToken, nil
}

// CompleteLocationRequest applies an acquired position. The result is
// dropped with ErrStaleLocation when its request was superseded or the flow
// already left CHECKOUT.
func (f *Flow) CompleteLocationRequest(token string, lat, lng float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page != PageCheckout || token == "" || token != f.locToken {
		return ErrStaleLocation
	}
	f.locToken = ""
	f.locDenied = false
	f.lat = &lat
	f.lng = &lng
	return nil
}

// FailLocationRequest records a denied or failed acquisition; the flow stays
// on CHECKOUT so the user can retry.
func (f *Flow) FailLocationRequest(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page != PageCheckout || token == "" || token != f.locToken {
		return ErrStaleLocation
	}
	f.locToken = ""
	f.locDenied = true
	return nil
}

func (f *Flow) LocationPending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locToken != ""
}

func (f *Flow) LocationDenied() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locDenied
}

func (f *Flow) Location() (lat, lng *float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lat, f.lng
}

// Submit validates the checkout input in order (cart, phone, location),
// composes the order from resolvable cart entries only, and posts it. On
// success the cart is cleared in memory and storage and the flow moves to
// SUCCESS; on failure the flow and cart are untouched.
func (f *Flow) Submit(ctx context.Context) (models.OrderResult, error) {
	f.mu.Lock()
	if f.page != PageCheckout {
		f.mu.Unlock()
		return models.OrderResult{}, ErrBadTransition
	}

	totals := cart.Materialize(f.cart, f.index)
	phone := strings.TrimSpace(f.phone)
	lat, lng := f.lat, f.lng

	var precondition error
	switch {
	case totals.TotalQty <= 0:
		precondition = ErrEmptyCart
	case phone == "":
		precondition = ErrPhoneRequired
	case lat == nil || lng == nil:
		precondition = ErrLocationRequired
	}
	if precondition != nil {
		f.mu.Unlock()
		return models.OrderResult{}, precondition
	}

	items := make([]models.OrderItem, 0, len(totals.Items))
	for _, line := range totals.Items {
		items = append(items, models.OrderItem{ProductID: line.Product.ID, Qty: line.Qty})
	}
	req := models.OrderRequest{
		CompanyID:     f.tenantID,
		Phone:         phone,
		DeliveryLat:   *lat,
		DeliveryLng:   *lng,
		PaymentMethod: f.payment,
		Items:         items,
	}
	initData := f.initData
	f.mu.Unlock()

	res, err := f.submitter.CreateOrder(ctx, req, initData)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		return models.OrderResult{}, err
	}
	if f.page != PageCheckout {
		// the user navigated away while the request was in flight; the
		// order is placed but the stale result is not applied to the flow
		return res, nil
	}
	f.cart = cart.Cart{}
	// the order is already placed; a failed storage clear must not undo it
	_ = f.store.Clear(ctx, f.tenantID)
	f.result = &res
	f.locToken = ""
	f.page = PageSuccess
	return res, nil
}

// Reset starts a new order from the SUCCESS page: back to MENU with the
// (already empty) cart and no held result. Checkout input is kept so a
// repeat customer does not retype it.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page != PageSuccess {
		return ErrBadTransition
	}
	f.result = nil
	f.page = PageMenu
	return nil
}
