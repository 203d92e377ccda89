package service

import (
	"context"
	"errors"
	"time"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"gorm.io/gorm"
)

// CartLine is a cart item joined with its live variant price and display names.
type CartLine struct {
	CartItemID  uint        `json:"cart_item_id"`
	CartID      uint        `json:"cart_id"`
	VariantID   uint        `json:"variant_id"`
	Quantity    int         `json:"quantity"`
	Price       model.Money `json:"price"`
	VariantName string      `json:"variant_name"`
	ProductName string      `json:"product_name"`
	ProductID   uint        `json:"product_id"`
	Stock       int         `json:"-"`
}

// CartView is what clients see. A user without a cart gets CartID 0 and no lines.
type CartView struct {
	CartID      uint        `json:"cart_id"`
	UserID      uint        `json:"user_id"`
	CreatedDate *time.Time  `json:"created_date"`
	TotalAmount model.Money `json:"total_amount"`
	Items       []CartLine  `json:"cart_items"`
}

type CartService interface {
	AddItem(ctx context.Context, userID, variantID uint, qty int) (*CartLine, model.Money, error)
	UpdateItem(ctx context.Context, cartItemID uint, qty int) (*CartView, error)
	RemoveItem(ctx context.Context, cartItemID uint) (*CartView, error)
	Clear(ctx context.Context, userID uint) error
	View(ctx context.Context, userID uint) (*CartView, error)
}

type cartService struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	variantRepo repository.VariantRepository
}

func NewCartService(db *gorm.DB, cartRepo repository.CartRepository, variantRepo repository.VariantRepository) CartService {
	return &cartService{
		db:          db,
		cartRepo:    cartRepo,
		variantRepo: variantRepo,
	}
}

func (s *cartService) AddItem(ctx context.Context, userID, variantID uint, qty int) (*CartLine, model.Money, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"variant_id": variantID,
		"quantity":   qty,
	})

	if qty < 1 {
		return nil, model.Money{}, ErrInvalidQuantity
	}

	var (
		line  *CartLine
		total model.Money
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		variant, err := s.variantRepo.WithTx(tx).FindByID(variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVariantNotFound
			}
			return persistenceError("find variant", err)
		}
		if variant.Price == nil {
			return ErrVariantUnpriced
		}

		if err := carts.EnsureForUser(userID); err != nil {
			return persistenceError("create cart", err)
		}
		cart, err := carts.FindByUserIDForUpdate(userID)
		if err != nil {
			return persistenceError("lock cart", err)
		}

		item, err := carts.FindItem(cart.ID, variantID)
		switch {
		case err == nil:
			item.Quantity += qty
			err = carts.UpdateItemQuantity(item.ID, item.Quantity)
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = &model.CartItem{CartID: cart.ID, VariantID: variantID, Quantity: qty}
			err = carts.CreateItem(item)
		}
		if err != nil {
			return persistenceError("save cart item", err)
		}

		view, err := recomputeCart(carts, cart.ID)
		if err != nil {
			return err
		}
		total = view.TotalAmount

		item.Variant = variant
		l := toCartLine(*item)
		line = &l
		return nil
	})
	if err != nil {
		logger.Warn("Add to cart failed", map[string]interface{}{
			"user_id":    userID,
			"variant_id": variantID,
			"error":      err.Error(),
		})
		return nil, model.Money{}, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_id":      line.CartID,
		"cart_item_id": line.CartItemID,
		"total":        total.String(),
	})
	return line, total, nil
}

func (s *cartService) UpdateItem(ctx context.Context, cartItemID uint, qty int) (*CartView, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"cart_item_id": cartItemID,
		"quantity":     qty,
	})

	var view *CartView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		item, err := findCartItem(carts, cartItemID)
		if err != nil {
			return err
		}
		if _, err := carts.FindByIDForUpdate(item.CartID); err != nil {
			return persistenceError("lock cart", err)
		}

		if qty <= 0 {
			err = carts.DeleteItem(item.ID)
		} else {
			err = carts.UpdateItemQuantity(item.ID, qty)
		}
		if err != nil {
			return persistenceError("update cart item", err)
		}

		view, err = recomputeCart(carts, item.CartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartItemID uint) (*CartView, error) {
	logger.Info("Removing cart item", map[string]interface{}{
		"cart_item_id": cartItemID,
	})

	var view *CartView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		item, err := findCartItem(carts, cartItemID)
		if err != nil {
			return err
		}
		if _, err := carts.FindByIDForUpdate(item.CartID); err != nil {
			return persistenceError("lock cart", err)
		}
		if err := carts.DeleteItem(item.ID); err != nil {
			return persistenceError("delete cart item", err)
		}

		view, err = recomputeCart(carts, item.CartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *cartService) Clear(ctx context.Context, userID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		cart, err := carts.FindByUserIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return persistenceError("find cart", err)
		}
		return clearCart(carts, cart.ID)
	})
}

// View also repairs a cached total that drifted from live prices.
func (s *cartService) View(ctx context.Context, userID uint) (*CartView, error) {
	carts := s.cartRepo.WithTx(s.db.WithContext(ctx))

	cart, err := carts.FindByUserIDWithItems(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartView{UserID: userID, Items: []CartLine{}}, nil
		}
		return nil, persistenceError("load cart", err)
	}

	view := toCartView(cart)
	if !cart.TotalAmount.Equal(view.TotalAmount.Decimal) {
		logger.Info("Reconciling stale cart total", map[string]interface{}{
			"cart_id": cart.ID,
			"cached":  cart.TotalAmount.String(),
			"live":    view.TotalAmount.String(),
		})
		if err := carts.UpdateTotal(cart.ID, view.TotalAmount); err != nil {
			return nil, persistenceError("update cart total", err)
		}
	}
	return view, nil
}

func findCartItem(carts repository.CartRepository, cartItemID uint) (*model.CartItem, error) {
	item, err := carts.FindItemByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, persistenceError("find cart item", err)
	}
	return item, nil
}

// recomputeCart reloads the cart lines and stores Σ(qty × live price) as the total.
func recomputeCart(carts repository.CartRepository, cartID uint) (*CartView, error) {
	cart, err := carts.FindByIDWithItems(cartID)
	if err != nil {
		return nil, persistenceError("reload cart", err)
	}
	view := toCartView(cart)
	if err := carts.UpdateTotal(cartID, view.TotalAmount); err != nil {
		return nil, persistenceError("update cart total", err)
	}
	return view, nil
}

func clearCart(carts repository.CartRepository, cartID uint) error {
	if err := carts.DeleteItemsByCartID(cartID); err != nil {
		return persistenceError("delete cart items", err)
	}
	if err := carts.UpdateTotal(cartID, model.Money{}); err != nil {
		return persistenceError("reset cart total", err)
	}
	return nil
}

// removeOrderedLines drops the given lines and recomputes the total from
// whatever is left in the cart.
func removeOrderedLines(carts repository.CartRepository, cartID uint, lines []model.CartItem) error {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}
	if err := carts.DeleteItems(cartID, ids); err != nil {
		return persistenceError("delete ordered cart items", err)
	}
	_, err := recomputeCart(carts, cartID)
	return err
}

func toCartView(cart *model.Cart) *CartView {
	created := cart.CreatedAt
	view := &CartView{
		CartID:      cart.ID,
		UserID:      cart.UserID,
		CreatedDate: &created,
		Items:       make([]CartLine, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		view.Items = append(view.Items, toCartLine(item))
		view.TotalAmount = view.TotalAmount.Plus(item.LineTotal())
	}
	return view
}

func toCartLine(item model.CartItem) CartLine {
	line := CartLine{
		CartItemID: item.ID,
		CartID:     item.CartID,
		VariantID:  item.VariantID,
		Quantity:   item.Quantity,
	}
	if v := item.Variant; v != nil {
		if v.Price != nil {
			line.Price = *v.Price
		}
		line.VariantName = v.Name
		line.ProductName = v.ProductName()
		line.ProductID = v.ProductID
		line.Stock = v.Quantity
	}
	return line
}
