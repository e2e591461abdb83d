package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartRepository = (*MemoryCartRepository)(nil)
var _ port.ProductsRepository = (*MemoryProductsRepository)(nil)

type memoryLine struct {
	quantity  int
	createdAt time.Time
}

// MemoryCartRepository holds cart lines in process memory, keyed by
// cart id. The mutex spans every read-modify-write sequence, giving it
// the same no-lost-update guarantee as the SQL upsert.
type MemoryCartRepository struct {
	mu       sync.RWMutex
	carts    map[string]map[string]memoryLine
	products *MemoryProductsRepository
	clock    int64
}

func NewMemoryCartRepository(
	products *MemoryProductsRepository,
) *MemoryCartRepository {
	return &MemoryCartRepository{
		carts:    make(map[string]map[string]memoryLine),
		products: products,
	}
}

func (r *MemoryCartRepository) UpsertAdd(
	ctx context.Context, cartID, productID string, quantity int,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.lines(cartID)
	if line, ok := lines[productID]; ok {
		line.quantity = min(domain.MaxQuantity, line.quantity+quantity)
		lines[productID] = line
		return nil
	}
	lines[productID] = memoryLine{quantity: quantity, createdAt: r.tick()}
	return nil
}

func (r *MemoryCartRepository) SetQuantity(
	ctx context.Context, cartID, productID string, quantity int,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.lines(cartID)
	if line, ok := lines[productID]; ok {
		line.quantity = quantity
		lines[productID] = line
	}
	return nil
}

func (r *MemoryCartRepository) DeleteLine(
	ctx context.Context, cartID, productID string,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines(cartID), productID)
	return nil
}

func (r *MemoryCartRepository) DeleteAll(
	ctx context.Context, cartID string,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.lines(cartID)
	for productID, line := range lines {
		if line.quantity > 0 {
			delete(lines, productID)
		}
	}
	return nil
}

func (r *MemoryCartRepository) ReadItems(
	ctx context.Context, cartID string,
) ([]domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type joined struct {
		item      domain.CartItem
		createdAt time.Time
	}

	var js []joined
	for productID, line := range r.carts[cartID] {
		p, ok := r.products.get(productID)
		if !ok {
			continue // orphan line, excluded from the snapshot
		}
		js = append(js, joined{
			item:      domain.CartItem{Product: p, Quantity: line.quantity},
			createdAt: line.createdAt,
		})
	}

	sort.Slice(js, func(i, j int) bool {
		return js[i].createdAt.After(js[j].createdAt)
	})

	items := make([]domain.CartItem, 0, len(js))
	for _, j := range js {
		items = append(items, j.item)
	}
	return items, nil
}

func (r *MemoryCartRepository) lines(cartID string) map[string]memoryLine {
	lines, ok := r.carts[cartID]
	if !ok {
		lines = make(map[string]memoryLine)
		r.carts[cartID] = lines
	}
	return lines
}

// tick produces strictly increasing timestamps so snapshot ordering is
// stable even when lines are created within the same wall-clock tick.
func (r *MemoryCartRepository) tick() time.Time {
	r.clock++
	return time.Unix(0, r.clock)
}

type MemoryProductsRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

func NewMemoryProductsRepository() *MemoryProductsRepository {
	return &MemoryProductsRepository{
		products: make(map[string]domain.Product),
	}
}

func (r *MemoryProductsRepository) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read(len(r.order)), nil
}

func (r *MemoryProductsRepository) ReadRecommended(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read(limit), nil
}

func (r *MemoryProductsRepository) read(limit int) (ps []domain.Product) {
	for _, id := range r.order {
		if len(ps) == limit {
			break
		}
		ps = append(ps, r.products[id])
	}
	return ps
}

func (r *MemoryProductsRepository) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "MemoryProductsRepository.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	p, ok := r.get(productID)
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return p, nil
}

func (r *MemoryProductsRepository) StoreProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ProductID == "" {
		p.ProductID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.products[p.ProductID] = p
	r.order = append(r.order, p.ProductID)
	return p, nil
}

func (r *MemoryProductsRepository) get(productID string) (domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[productID]
	return p, ok
}
