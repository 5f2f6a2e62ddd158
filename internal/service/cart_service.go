package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
	"stylekart/internal/pricing"
	"stylekart/internal/repository"
	"stylekart/internal/session"
)

// cartLineStore is the strategy behind CartService: durable rows for users,
// TTL-bounded session records for guests. Both rewrite the owner's full line
// set on every mutation.
type cartLineStore interface {
	Lines(ctx context.Context, owner Owner) ([]model.CartLine, error)
	PutLines(ctx context.Context, owner Owner, lines []model.CartLine) error
	Clear(ctx context.Context, owner Owner) error
}

type userCartLines struct {
	repo repository.CartRepository
}

func (u userCartLines) Lines(ctx context.Context, owner Owner) ([]model.CartLine, error) {
	id, err := uuid.Parse(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", owner.ID, err)
	}
	return u.repo.GetLines(ctx, id)
}

func (u userCartLines) PutLines(ctx context.Context, owner Owner, lines []model.CartLine) error {
	id, err := uuid.Parse(owner.ID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", owner.ID, err)
	}
	return u.repo.ReplaceLines(ctx, id, lines)
}

func (u userCartLines) Clear(ctx context.Context, owner Owner) error {
	id, err := uuid.Parse(owner.ID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", owner.ID, err)
	}
	return u.repo.Clear(ctx, id)
}

type guestCartLines struct {
	sessions *session.Store
}

func (g guestCartLines) Lines(ctx context.Context, owner Owner) ([]model.CartLine, error) {
	return g.sessions.CartLines(ctx, owner.ID)
}

func (g guestCartLines) PutLines(ctx context.Context, owner Owner, lines []model.CartLine) error {
	return g.sessions.PutCartLines(ctx, owner.ID, lines)
}

func (g guestCartLines) Clear(ctx context.Context, owner Owner) error {
	return g.sessions.ClearCart(ctx, owner.ID)
}

type cartService struct {
	user       cartLineStore
	guest      cartLineStore
	products   ProductService
	calculator *pricing.Calculator
	logger     zerolog.Logger
}

// NewCartService creates the cart service shared by users and guests.
func NewCartService(repo repository.CartRepository, sessions *session.Store, products ProductService,
	calculator *pricing.Calculator, logger zerolog.Logger) CartService {
	return &cartService{
		user:       userCartLines{repo: repo},
		guest:      guestCartLines{sessions: sessions},
		products:   products,
		calculator: calculator,
		logger:     logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) store(owner Owner) cartLineStore {
	if owner.Kind == OwnerGuest {
		return s.guest
	}
	return s.user
}

func (s *cartService) Get(ctx context.Context, owner Owner) (*model.PricedCart, error) {
	lines, err := s.store(owner).Lines(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.calculator.PriceCart(ctx, lines)
}

// AddItem appends to an existing line or creates a new one. Stock is
// checked against the combined quantity, so adding twice behaves exactly
// like one larger add.
func (s *cartService) AddItem(ctx context.Context, owner Owner, productID uuid.UUID, quantity int) (*model.PricedCart, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	p, err := s.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	st := s.store(owner)
	lines, err := st.Lines(ctx, owner)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			next := lines[i].Quantity + quantity
			if p.Stock < next {
				return nil, &model.StockError{ProductID: productID, Requested: next, Available: p.Stock}
			}
			lines[i].Quantity = next
			found = true
			break
		}
	}
	if !found {
		if p.Stock < quantity {
			return nil, &model.StockError{ProductID: productID, Requested: quantity, Available: p.Stock}
		}
		lines = append(lines, model.CartLine{ProductID: productID, Quantity: quantity})
	}

	if err := st.PutLines(ctx, owner, lines); err != nil {
		return nil, err
	}
	return s.calculator.PriceCart(ctx, lines)
}

// UpdateQuantity replaces a line's quantity outright.
func (s *cartService) UpdateQuantity(ctx context.Context, owner Owner, productID uuid.UUID, quantity int) (*model.PricedCart, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	p, err := s.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Stock < quantity {
		return nil, &model.StockError{ProductID: productID, Requested: quantity, Available: p.Stock}
	}

	st := s.store(owner)
	lines, err := st.Lines(ctx, owner)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrCartItemNotFound
	}

	if err := st.PutLines(ctx, owner, lines); err != nil {
		return nil, err
	}
	return s.calculator.PriceCart(ctx, lines)
}

func (s *cartService) RemoveItem(ctx context.Context, owner Owner, productID uuid.UUID) (*model.PricedCart, error) {
	st := s.store(owner)
	lines, err := st.Lines(ctx, owner)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	found := false
	for _, line := range lines {
		if line.ProductID == productID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return nil, model.ErrCartItemNotFound
	}

	if err := st.PutLines(ctx, owner, kept); err != nil {
		return nil, err
	}
	return s.calculator.PriceCart(ctx, kept)
}

func (s *cartService) Clear(ctx context.Context, owner Owner) error {
	return s.store(owner).Clear(ctx, owner)
}

// activeProduct resolves a product for a cart mutation. Unlike reads, which
// skip unresolvable lines, mutations reject missing or inactive products.
func (s *cartService) activeProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}
