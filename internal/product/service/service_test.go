package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/abgdnv/productdash/internal/product/model"
	"github.com/abgdnv/productdash/internal/product/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(seed []model.Product) *Controller {
	return NewController(store.NewInMemoryStore(seed), slog.New(slog.DiscardHandler))
}

func ids(products []model.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func names(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func strPtr(s string) *string { return &s }

func Test_Controller_AddProduct_SequentialIDs(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())

	for i := range 5 {
		before := len(c.Products(ctx))
		// when
		added := c.AddProduct(ctx, Draft{Name: "Item", Price: "1", Stock: "1"})
		// then
		assert.Equal(t, before+1, added.ID, "add #%d", i)
	}
	all := c.Products(ctx)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids(all))
}

func Test_Controller_AddProduct_ParsesDraftAndResetsForm(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	c.ToggleAddForm(ctx)
	c.UpdateDraft(ctx, DraftPatch{Name: strPtr("half typed")})

	// when
	added := c.AddProduct(ctx, Draft{Name: "X", Price: "12.5", Stock: "3", Type: model.TypeDresses})

	// then
	expected := model.Product{ID: 4, Name: "X", Price: model.Valid(12.5), Stock: model.Valid(3), Type: model.TypeDresses}
	assert.Equal(t, expected, added)
	all := c.Products(ctx)
	require.Len(t, all, 4)
	assert.Equal(t, expected, all[3], "new product should be appended at the end")

	view := c.View(ctx)
	assert.False(t, view.AddFormVisible, "add form should be hidden after a successful add")
	assert.Equal(t, DefaultDraft(), view.Draft, "draft should be reset after a successful add")
}

func Test_Controller_AddProduct_NumberParsing(t *testing.T) {
	testCases := []struct {
		name          string
		price         model.NumericText
		stock         model.NumericText
		expectedPrice model.Number[float64]
		expectedStock model.Number[int]
	}{
		{
			name:          "Plain numbers",
			price:         "99.99",
			stock:         "7",
			expectedPrice: model.Valid(99.99),
			expectedStock: model.Valid(7),
		},
		{
			name:          "Trailing garbage is ignored",
			price:         "12.5kg",
			stock:         "3.7",
			expectedPrice: model.Valid(12.5),
			expectedStock: model.Valid(3),
		},
		{
			name:          "Empty input is stored as invalid",
			price:         "",
			stock:         "",
			expectedPrice: model.Invalid[float64](),
			expectedStock: model.Invalid[int](),
		},
		{
			name:          "Non-numeric input is stored as invalid",
			price:         "abc",
			stock:         "many",
			expectedPrice: model.Invalid[float64](),
			expectedStock: model.Invalid[int](),
		},
		{
			name:          "Negative numbers are accepted",
			price:         "-5",
			stock:         "-2",
			expectedPrice: model.Valid(-5.0),
			expectedStock: model.Valid(-2),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			c := newTestController(nil)
			// when
			added := c.AddProduct(ctx, Draft{Name: "P", Price: tc.price, Stock: tc.stock})
			// then
			assert.Equal(t, 1, added.ID)
			assert.Equal(t, tc.expectedPrice, added.Price)
			assert.Equal(t, tc.expectedStock, added.Stock)
		})
	}
}

func Test_Controller_AddProduct_AppendsAfterSort(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	c.SortBy(ctx, model.SortByPrice)
	require.Equal(t, []int{1, 3, 2}, ids(c.Products(ctx)))

	// when
	c.AddProduct(ctx, Draft{Name: "Cheap", Price: "1", Stock: "1"})

	// then
	assert.Equal(t, []int{1, 3, 2, 4}, ids(c.Products(ctx)))
}

func Test_Controller_CommitDraft(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	c.ToggleAddForm(ctx)
	price := model.NumericText("20")
	productType := model.TypeElectronics
	c.UpdateDraft(ctx, DraftPatch{Name: strPtr("Radio"), Price: &price, Type: &productType})

	// when
	added := c.CommitDraft(ctx)

	// then
	assert.Equal(t, model.Product{ID: 4, Name: "Radio", Price: model.Valid(20.0), Stock: model.Valid(0), Type: model.TypeElectronics}, added)
	view := c.View(ctx)
	assert.False(t, view.AddFormVisible)
	assert.Equal(t, DefaultDraft(), view.Draft)
}

func Test_Controller_DeleteProduct(t *testing.T) {
	testCases := []struct {
		name     string
		deletes  []int
		expected []int
	}{
		{
			name:     "Existing product",
			deletes:  []int{2},
			expected: []int{1, 3},
		},
		{
			name:     "Unknown product is a no-op",
			deletes:  []int{42},
			expected: []int{1, 2, 3},
		},
		{
			name:     "Deleting twice equals deleting once",
			deletes:  []int{1, 1},
			expected: []int{2, 3},
		},
		{
			name:     "Delete everything",
			deletes:  []int{3, 1, 2},
			expected: []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			c := newTestController(model.StarterSet())
			// when
			for _, id := range tc.deletes {
				c.DeleteProduct(ctx, id)
			}
			// then
			assert.Equal(t, tc.expected, ids(c.Products(ctx)))
		})
	}
}

func Test_Controller_IDsStayUniqueAfterDelete(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	c.DeleteProduct(ctx, 1)

	// when
	added := c.AddProduct(ctx, Draft{Name: "New"})

	// then
	assert.Equal(t, 4, added.ID, "deleted IDs must not be reused and live IDs must not collide")
	assert.Equal(t, []int{2, 3, 4}, ids(c.Products(ctx)))
}

func Test_Controller_VisibleProducts(t *testing.T) {
	seed := []model.Product{
		{Name: "Apple", Type: model.TypeCosmetics},
		{Name: "banana", Type: model.TypeDresses},
		{Name: "Pineapple", Type: model.TypeDresses},
	}
	testCases := []struct {
		name       string
		nameFilter string
		typeFilter model.ProductType
		expected   []string
	}{
		{
			name:     "No filters return everything in order",
			expected: []string{"Apple", "banana", "Pineapple"},
		},
		{
			name:       "Name filter is a case-insensitive substring match",
			nameFilter: "AP",
			expected:   []string{"Apple", "Pineapple"},
		},
		{
			name:       "Type filter is an exact match",
			typeFilter: model.TypeDresses,
			expected:   []string{"banana", "Pineapple"},
		},
		{
			name:       "Both filters must match",
			nameFilter: "apple",
			typeFilter: model.TypeDresses,
			expected:   []string{"Pineapple"},
		},
		{
			name:       "Nothing matches",
			nameFilter: "cherry",
			expected:   []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			c := newTestController(seed)
			c.SetNameFilter(ctx, tc.nameFilter)
			c.SetTypeFilter(ctx, tc.typeFilter)
			// when
			visible := c.VisibleProducts(ctx)
			// then
			assert.Equal(t, tc.expected, names(visible))
			assert.Len(t, c.Products(ctx), 3, "filtering must not change the collection")
		})
	}
}

func Test_Controller_VisibleProducts_SpecExample(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController([]model.Product{{Name: "Apple"}, {Name: "banana"}})

	// when
	c.SetNameFilter(ctx, "AP")

	// then
	assert.Equal(t, []string{"Apple"}, names(c.VisibleProducts(ctx)))
}

func Test_Controller_VisibleProducts_FollowsCollection(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	c.SetTypeFilter(ctx, model.TypeDresses)
	require.Equal(t, []int{2}, ids(c.VisibleProducts(ctx)))

	// when
	c.DeleteProduct(ctx, 2)

	// then
	assert.Empty(t, c.VisibleProducts(ctx))
	assert.Equal(t, []int{1, 3}, ids(c.Products(ctx)))
}

func Test_Controller_SortBy(t *testing.T) {
	testCases := []struct {
		name     string
		keys     []model.SortKey
		expected [][]int
	}{
		{
			name:     "Price ascending then descending",
			keys:     []model.SortKey{model.SortByPrice, model.SortByPrice},
			expected: [][]int{{1, 3, 2}, {2, 3, 1}},
		},
		{
			name:     "Stock ascending",
			keys:     []model.SortKey{model.SortByStock},
			expected: [][]int{{3, 2, 1}},
		},
		{
			name:     "Direction is shared across keys",
			keys:     []model.SortKey{model.SortByPrice, model.SortByName},
			expected: [][]int{{1, 3, 2}, {3, 2, 1}},
		},
		{
			name:     "Type ascending",
			keys:     []model.SortKey{model.SortByType},
			expected: [][]int{{1, 2, 3}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			c := newTestController(model.StarterSet())
			direction := model.Ascending
			for i, key := range tc.keys {
				// when
				applied := c.SortBy(ctx, key)
				// then
				assert.Equal(t, direction, applied, "sort #%d direction", i)
				assert.Equal(t, tc.expected[i], ids(c.Products(ctx)), "sort #%d order", i)
				direction = direction.Toggle()
			}
			assert.Equal(t, direction, c.View(ctx).SortDirection)
		})
	}
}

func Test_Controller_SortBy_InvalidNumbersLast(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(nil)
	c.AddProduct(ctx, Draft{Name: "a", Price: "oops"})
	c.AddProduct(ctx, Draft{Name: "b", Price: "5"})
	c.AddProduct(ctx, Draft{Name: "c", Price: "1"})

	// when / then
	c.SortBy(ctx, model.SortByPrice)
	assert.Equal(t, []int{3, 2, 1}, ids(c.Products(ctx)))
	c.SortBy(ctx, model.SortByPrice)
	assert.Equal(t, []int{1, 2, 3}, ids(c.Products(ctx)))
}

func Test_Controller_ToggleAddForm_KeepsDraft(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	require.False(t, c.View(ctx).AddFormVisible)

	// when
	shown := c.ToggleAddForm(ctx)
	c.UpdateDraft(ctx, DraftPatch{Name: strPtr("Lipstick")})
	hidden := c.ToggleAddForm(ctx)

	// then
	assert.True(t, shown)
	assert.False(t, hidden)
	assert.Equal(t, "Lipstick", c.View(ctx).Draft.Name, "hiding the form must keep the draft")
	assert.Len(t, c.Products(ctx), 3, "the draft must not enter the collection")
}

func Test_Controller_UpdateDraft(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(nil)
	stock := model.NumericText("12")

	// when
	c.UpdateDraft(ctx, DraftPatch{Name: strPtr("Dress")})
	draft := c.UpdateDraft(ctx, DraftPatch{Stock: &stock})

	// then
	assert.Equal(t, Draft{Name: "Dress", Price: "0", Stock: "12"}, draft)
}

func Test_Controller_CancelDraft(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	c.ToggleAddForm(ctx)
	c.UpdateDraft(ctx, DraftPatch{Name: strPtr("Scarf")})

	// when
	c.CancelDraft(ctx)

	// then
	view := c.View(ctx)
	assert.False(t, view.AddFormVisible)
	assert.Equal(t, DefaultDraft(), view.Draft)
	assert.Len(t, c.Products(ctx), 3)
}

func Test_Controller_View_Defaults(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	c.SetNameFilter(ctx, "1")

	// when
	view := c.View(ctx)

	// then
	assert.Equal(t, ViewState{
		NameFilter:     "1",
		TypeFilter:     model.TypeNone,
		SortDirection:  model.Ascending,
		AddFormVisible: false,
		Draft:          DefaultDraft(),
		VisibleCount:   1,
		TotalCount:     3,
	}, view)
}

func Test_Controller_ConcurrentAdds(t *testing.T) {
	// given
	ctx := context.Background()
	c := newTestController(model.StarterSet())
	const workers = 20

	// when
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddProduct(ctx, Draft{Name: "Parallel", Price: "1", Stock: "1"})
			c.SortBy(ctx, model.SortByName)
		}()
	}
	wg.Wait()

	// then
	all := c.Products(ctx)
	require.Len(t, all, 3+workers)
	seen := make(map[int]bool, len(all))
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate ID %d", p.ID)
		seen[p.ID] = true
	}
}
