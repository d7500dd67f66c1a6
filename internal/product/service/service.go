// Package service provides the product list controller: the product collection
// together with the filters, sort direction and add-form state of the dashboard.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	producterrors "github.com/abgdnv/productdash/internal/product/errors"
	"github.com/abgdnv/productdash/internal/product/model"
	"github.com/abgdnv/productdash/internal/product/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ProductListController defines the operations the presentation layer forwards user actions to.
// None of the operations fail; the context is only used for log correlation.
type ProductListController interface {
	// AddProduct parses the draft, appends the product at the end of the collection,
	// resets the current draft and hides the add form. Unparseable numbers are stored as invalid.
	AddProduct(ctx context.Context, draft Draft) model.Product

	// CommitDraft adds the current draft.
	CommitDraft(ctx context.Context) model.Product

	// DeleteProduct removes the product with the given ID. Unknown IDs are ignored.
	DeleteProduct(ctx context.Context, id int)

	// SortBy sorts the whole collection by key in the current direction, then flips the
	// direction for the next call. Returns the direction that was applied.
	SortBy(ctx context.Context, key model.SortKey) model.SortDirection

	// SetNameFilter sets the case-insensitive name substring filter.
	SetNameFilter(ctx context.Context, text string)

	// SetTypeFilter sets the exact type filter. The empty type matches everything.
	SetTypeFilter(ctx context.Context, productType model.ProductType)

	// VisibleProducts returns the products that pass both filters, in collection order.
	VisibleProducts(ctx context.Context) []model.Product

	// Products returns the whole collection in its current order.
	Products(ctx context.Context) []model.Product

	// ToggleAddForm shows or hides the add form and returns the new visibility.
	// The draft is kept either way.
	ToggleAddForm(ctx context.Context) bool

	// UpdateDraft applies field edits to the current draft and returns it.
	UpdateDraft(ctx context.Context, patch DraftPatch) Draft

	// CancelDraft discards the current draft and hides the add form.
	CancelDraft(ctx context.Context)

	// View returns a snapshot of the view state.
	View(ctx context.Context) ViewState
}

// ViewState is a snapshot of the dashboard state that is not the collection itself.
type ViewState struct {
	NameFilter     string              `json:"name_filter"`
	TypeFilter     model.ProductType   `json:"type_filter"`
	SortDirection  model.SortDirection `json:"sort_direction"`
	AddFormVisible bool                `json:"add_form_visible"`
	Draft          Draft               `json:"draft"`
	VisibleCount   int                 `json:"visible_count"`
	TotalCount     int                 `json:"total_count"`
}

// Controller implements ProductListController. All operations are serialized
// by a single mutex, so concurrent callers see them in a total order.
type Controller struct {
	mu             sync.Mutex
	repository     store.ProductStore
	nameFilter     string
	typeFilter     model.ProductType
	sortDirection  model.SortDirection
	addFormVisible bool
	draft          Draft

	logger         *slog.Logger
	addedCounter   metric.Int64Counter
	deletedCounter metric.Int64Counter
}

// NewController creates a new Controller over repo with the default view state.
func NewController(repo store.ProductStore, logger *slog.Logger) *Controller {
	meter := otel.Meter("product-dashboard")
	addedCounter, err := meter.Int64Counter("products_added", metric.WithDescription("Total number of products added"))
	if err != nil {
		panic(fmt.Sprintf("failed to create products_added counter: %v", err))
	}
	deletedCounter, err := meter.Int64Counter("products_deleted", metric.WithDescription("Total number of products deleted"))
	if err != nil {
		panic(fmt.Sprintf("failed to create products_deleted counter: %v", err))
	}
	return &Controller{
		repository:     repo,
		sortDirection:  model.Ascending,
		draft:          DefaultDraft(),
		logger:         logger.With("component", "controller"),
		addedCounter:   addedCounter,
		deletedCounter: deletedCounter,
	}
}

// AddProduct commits draft as a new product.
func (c *Controller) AddProduct(ctx context.Context, draft Draft) model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.add(ctx, draft)
}

// CommitDraft commits the current draft as a new product.
func (c *Controller) CommitDraft(ctx context.Context) model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.add(ctx, c.draft)
}

func (c *Controller) add(ctx context.Context, draft Draft) model.Product {
	price := model.ParseFloatPrefix(string(draft.Price))
	stock := model.ParseIntPrefix(string(draft.Stock))
	if !price.Valid || !stock.Valid {
		c.logger.WarnContext(ctx, "Adding product with unparseable numbers",
			"price_input", draft.Price, "stock_input", draft.Stock)
	}

	product := c.repository.Create(draft.Name, price, stock, draft.Type)
	c.draft = DefaultDraft()
	c.addFormVisible = false
	c.addedCounter.Add(ctx, 1)

	c.logger.DebugContext(ctx, "Product added", "ID", product.ID, "Name", product.Name)
	return product
}

// DeleteProduct deletes the product with the given ID, if there is one.
func (c *Controller) DeleteProduct(ctx context.Context, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repository.DeleteByID(id); err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			c.logger.DebugContext(ctx, "Nothing to delete", "ID", id)
			return
		}
		c.logger.ErrorContext(ctx, "Error deleting product", "ID", id, "error", err)
		return
	}
	c.deletedCounter.Add(ctx, 1)
	c.logger.DebugContext(ctx, "Product deleted", "ID", id)
}

// SortBy sorts the collection by key and flips the sort direction.
func (c *Controller) SortBy(ctx context.Context, key model.SortKey) model.SortDirection {
	c.mu.Lock()
	defer c.mu.Unlock()

	applied := c.sortDirection
	c.repository.Sort(model.Directed(applied, model.Comparator(key)))
	c.sortDirection = applied.Toggle()

	c.logger.DebugContext(ctx, "Products sorted", "key", key, "direction", applied, "next_direction", c.sortDirection)
	return applied
}

// SetNameFilter sets the name filter.
func (c *Controller) SetNameFilter(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nameFilter = text
	c.logger.DebugContext(ctx, "Name filter set", "filter", text)
}

// SetTypeFilter sets the type filter.
func (c *Controller) SetTypeFilter(ctx context.Context, productType model.ProductType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.typeFilter = productType
	c.logger.DebugContext(ctx, "Type filter set", "filter", productType)
}

// VisibleProducts returns the filtered products.
func (c *Controller) VisibleProducts(_ context.Context) []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	return filterProducts(c.repository.FindAll(), c.nameFilter, c.typeFilter)
}

// Products returns all products.
func (c *Controller) Products(_ context.Context) []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.repository.FindAll()
}

// ToggleAddForm flips the add form visibility.
func (c *Controller) ToggleAddForm(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.addFormVisible = !c.addFormVisible
	c.logger.DebugContext(ctx, "Add form toggled", "visible", c.addFormVisible)
	return c.addFormVisible
}

// UpdateDraft edits the current draft.
func (c *Controller) UpdateDraft(ctx context.Context, patch DraftPatch) Draft {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = patch.applyTo(c.draft)
	c.logger.DebugContext(ctx, "Draft updated", "draft", c.draft)
	return c.draft
}

// CancelDraft resets the draft and hides the add form.
func (c *Controller) CancelDraft(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = DefaultDraft()
	c.addFormVisible = false
	c.logger.DebugContext(ctx, "Draft cancelled")
}

// View returns the current view state.
func (c *Controller) View(_ context.Context) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := c.repository.FindAll()
	return ViewState{
		NameFilter:     c.nameFilter,
		TypeFilter:     c.typeFilter,
		SortDirection:  c.sortDirection,
		AddFormVisible: c.addFormVisible,
		Draft:          c.draft,
		VisibleCount:   len(filterProducts(all, c.nameFilter, c.typeFilter)),
		TotalCount:     len(all),
	}
}

// filterProducts keeps the products whose lowercased name contains the lowercased
// name filter and whose type equals the type filter, when one is set.
func filterProducts(products []model.Product, nameFilter string, typeFilter model.ProductType) []model.Product {
	needle := strings.ToLower(nameFilter)
	visible := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if typeFilter != model.TypeNone && p.Type != typeFilter {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}
