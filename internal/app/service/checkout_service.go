package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"github.com/brightbuy/brightbuy-backend/pkg/util"
	"gorm.io/gorm"
)

type AddressDetails struct {
	HouseNumber int    `json:"house_number"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// CardDetails is only used for validation and hashing. The CVV is never persisted.
type CardDetails struct {
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

type CheckoutInput struct {
	UserID         uint
	PaymentMethod  model.PaymentMethod
	DeliveryMethod model.DeliveryMethod
	AddressID      *uint
	Address        *AddressDetails
	Card           *CardDetails
}

type CheckoutResult struct {
	OrderID               uint             `json:"order_id"`
	CartID                uint             `json:"cart_id"`
	UserID                uint             `json:"user_id"`
	OrderDate             time.Time        `json:"order_date"`
	TotalAmount           model.Money      `json:"total_amount"`
	EstimatedDeliveryDate string           `json:"estimated_delivery_date"`
	EstimatedDeliveryDays *int             `json:"estimated_delivery_days"`
	Items                 []OrderLine      `json:"order_items"`
	Estimate              DeliveryEstimate `json:"-"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	// PreviewDelivery estimates delivery for the current cart without locking or writing.
	PreviewDelivery(ctx context.Context, userID uint, method model.DeliveryMethod, city string) (*DeliveryEstimate, error)
}

type CheckoutOption func(*checkoutService)

// WithClock replaces time.Now for order dates and delivery estimates.
func WithClock(now func() time.Time) CheckoutOption {
	return func(s *checkoutService) {
		s.now = now
	}
}

type checkoutService struct {
	db           *gorm.DB
	cartRepo     repository.CartRepository
	orderRepo    repository.OrderRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	inventory    InventoryService
	locations    LocationService
	estimator    *DeliveryEstimator
	notifier     OrderNotifier
	now          func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	inventory InventoryService,
	locations LocationService,
	estimator *DeliveryEstimator,
	notifier OrderNotifier,
	opts ...CheckoutOption,
) CheckoutService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if estimator == nil {
		estimator = NewDeliveryEstimator(DefaultDeliveryRules())
	}
	s := &checkoutService{
		db:           db,
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		inventory:    inventory,
		locations:    locations,
		estimator:    estimator,
		notifier:     notifier,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// reservation is a cart line whose variant row is locked for the rest of the transaction.
type reservation struct {
	item    model.CartItem
	variant *model.Variant
}

func (s *checkoutService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	log := logger.WithContext(map[string]interface{}{
		"user_id":         in.UserID,
		"payment_method":  in.PaymentMethod,
		"delivery_method": in.DeliveryMethod,
	})
	log.Info("Checkout started")

	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if !in.DeliveryMethod.Valid() {
		return nil, ErrInvalidDeliveryMethod
	}

	now := s.now()
	card, err := s.prepareCard(in, now)
	if err != nil {
		log.Warn("Checkout rejected card details", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	var result *CheckoutResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)
		orders := s.orderRepo.WithTx(tx)

		address, err := s.resolveAddress(tx, in)
		if err != nil {
			return err
		}

		cart, err := loadCheckoutCart(carts, in.UserID)
		if err != nil {
			return err
		}

		reserved, err := s.validateStock(tx, cart.Items)
		if err != nil {
			return err
		}

		total := model.Money{}
		for _, r := range reserved {
			total = total.Plus(r.variant.Price.Times(r.item.Quantity))
		}

		order := &model.Order{
			CartID:      cart.ID,
			UserID:      in.UserID,
			OrderDate:   now,
			TotalAmount: total,
		}
		if err := orders.Create(order); err != nil {
			return persistenceError("create order", err)
		}

		items := make([]model.OrderItem, 0, len(reserved))
		variants := make(map[uint]*model.Variant, len(reserved))
		for _, r := range reserved {
			variants[r.variant.ID] = r.variant
		}
		for _, item := range cart.Items {
			variant := variants[item.VariantID]
			items = append(items, model.OrderItem{
				OrderID:   order.ID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				Price:     *variant.Price,
			})
		}
		if err := orders.CreateItems(items); err != nil {
			return persistenceError("create order items", err)
		}

		stock := make([]StockLine, 0, len(reserved))
		for _, r := range reserved {
			stock = append(stock, StockLine{
				VariantID: r.variant.ID,
				Stock:     r.variant.Quantity,
				Quantity:  r.item.Quantity,
			})
			if err := s.inventory.Decrement(tx, r.variant.ID, r.item.Quantity); err != nil {
				return err
			}
		}

		payment := &model.Payment{
			OrderID:     order.ID,
			Method:      in.PaymentMethod,
			Status:      model.PaymentStatusPending,
			PaymentDate: now,
		}
		if in.PaymentMethod == model.PaymentMethodCard {
			payment.Status = model.PaymentStatusCompleted
		}
		if err := orders.CreatePayment(payment); err != nil {
			return persistenceError("create payment", err)
		}
		if card != nil {
			card.PaymentID = payment.ID
			if err := orders.CreateCardDetail(card); err != nil {
				return persistenceError("create card detail", err)
			}
		}

		var city *CityInfo
		if address != nil {
			city = cityInfo(address.Location)
		}
		estimate := s.estimator.Estimate(in.DeliveryMethod, stock, city, now)

		delivery := &model.Delivery{
			OrderID:       order.ID,
			Method:        in.DeliveryMethod,
			EstimatedDate: estimate.EstimatedDate,
			Status:        model.DeliveryStatusPending,
		}
		if address != nil {
			delivery.AddressID = &address.ID
		}
		if err := orders.CreateDelivery(delivery); err != nil {
			return persistenceError("create delivery", err)
		}

		if err := removeOrderedLines(carts, cart.ID, cart.Items); err != nil {
			return err
		}

		for i := range items {
			items[i].Variant = variants[items[i].VariantID]
		}
		result = &CheckoutResult{
			OrderID:               order.ID,
			CartID:                cart.ID,
			UserID:                in.UserID,
			OrderDate:             order.OrderDate,
			TotalAmount:           total,
			EstimatedDeliveryDate: estimate.DateString(),
			EstimatedDeliveryDays: estimate.Days,
			Items:                 toOrderLines(items),
			Estimate:              estimate,
		}
		return nil
	})
	if err != nil {
		log.Warn("Checkout failed, transaction rolled back", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	log.Info("Checkout committed", map[string]interface{}{
		"order_id":     result.OrderID,
		"total_amount": result.TotalAmount.String(),
		"items":        len(result.Items),
	})

	s.notify(ctx, in, result)
	return result, nil
}

func (s *checkoutService) PreviewDelivery(ctx context.Context, userID uint, method model.DeliveryMethod, city string) (*DeliveryEstimate, error) {
	if method == "" {
		method = model.DeliveryMethodHomeDelivery
	}
	if !method.Valid() {
		return nil, ErrInvalidDeliveryMethod
	}

	var stock []StockLine
	cart, err := s.cartRepo.WithTx(s.db.WithContext(ctx)).FindByUserIDWithItems(userID)
	switch {
	case err == nil:
		for _, item := range cart.Items {
			line := toCartLine(item)
			stock = append(stock, StockLine{VariantID: line.VariantID, Stock: line.Stock, Quantity: line.Quantity})
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, persistenceError("load cart", err)
	}

	var info *CityInfo
	if name := strings.TrimSpace(city); name != "" && method == model.DeliveryMethodHomeDelivery {
		location, err := s.locations.ResolveCity(ctx, name)
		switch {
		case err == nil:
			info = cityInfo(location)
		case errors.Is(err, ErrCityNotFound):
			info = &CityInfo{Name: name}
		default:
			return nil, err
		}
	}

	estimate := s.estimator.Estimate(method, stock, info, s.now())
	return &estimate, nil
}

// prepareCard validates card details when present. Card payment without
// details is accepted and recorded without a card row.
func (s *checkoutService) prepareCard(in CheckoutInput, now time.Time) (*model.CardDetail, error) {
	if in.PaymentMethod != model.PaymentMethodCard || in.Card == nil {
		return nil, nil
	}
	c := in.Card

	if strings.TrimSpace(c.CardName) == "" {
		return nil, ErrInvalidCard
	}
	if err := util.ValidateCardNumber(c.CardNumber); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}
	if err := util.ValidateCVV(c.CVV); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}
	if err := util.ValidateExpiry(c.ExpiryDate, now); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}

	hash, err := util.HashCardNumber(c.CardNumber)
	if err != nil {
		return nil, err
	}
	return &model.CardDetail{
		CardName:   strings.TrimSpace(c.CardName),
		Last4:      util.CardLast4(c.CardNumber),
		Expiry:     strings.TrimSpace(c.ExpiryDate),
		NumberHash: hash,
	}, nil
}

func (s *checkoutService) resolveAddress(tx *gorm.DB, in CheckoutInput) (*model.Address, error) {
	if in.DeliveryMethod != model.DeliveryMethodHomeDelivery {
		return nil, nil
	}
	addresses := s.locationRepo.WithTx(tx)

	if in.AddressID != nil && *in.AddressID != 0 {
		address, err := addresses.FindAddressByID(*in.AddressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAddressNotFound
			}
			return nil, persistenceError("find address", err)
		}
		return address, nil
	}

	details := in.Address
	if details == nil || strings.TrimSpace(details.City) == "" {
		return nil, ErrAddressRequired
	}

	location, err := s.locations.ResolveCityTx(tx, details.City)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		HouseNumber: details.HouseNumber,
		Street:      strings.TrimSpace(details.Street),
		City:        location.City,
		State:       strings.TrimSpace(details.State),
		LocationID:  location.ID,
	}
	if err := addresses.CreateAddress(address); err != nil {
		return nil, persistenceError("create address", err)
	}
	address.Location = location
	return address, nil
}

// loadCheckoutCart locks the cart row before reading its lines so concurrent
// cart edits wait for the checkout to commit.
func loadCheckoutCart(carts repository.CartRepository, userID uint) (*model.Cart, error) {
	locked, err := carts.FindByUserIDForUpdate(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, persistenceError("lock cart", err)
	}
	cart, err := carts.FindByIDWithItems(locked.ID)
	if err != nil {
		return nil, persistenceError("load cart", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	return cart, nil
}

// validateStock locks every line's variant in ascending id order and fails on
// the first line that cannot be filled, before anything is written.
func (s *checkoutService) validateStock(tx *gorm.DB, items []model.CartItem) ([]reservation, error) {
	ordered := make([]model.CartItem, len(items))
	copy(ordered, items)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].VariantID < ordered[j].VariantID
	})

	reserved := make([]reservation, 0, len(ordered))
	for _, item := range ordered {
		variant, err := s.inventory.Reserve(tx, item.VariantID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if variant.Price == nil {
			return nil, ErrVariantUnpriced
		}
		reserved = append(reserved, reservation{item: item, variant: variant})
	}
	return reserved, nil
}

func (s *checkoutService) notify(ctx context.Context, in CheckoutInput, result *CheckoutResult) {
	confirmation := OrderConfirmation{
		OrderID:        result.OrderID,
		UserID:         result.UserID,
		Items:          result.Items,
		TotalAmount:    result.TotalAmount,
		PaymentMethod:  in.PaymentMethod,
		DeliveryMethod: in.DeliveryMethod,
		EstimatedDate:  result.EstimatedDeliveryDate,
		EstimatedDays:  result.EstimatedDeliveryDays,
	}

	if s.userRepo != nil {
		user, err := s.userRepo.FindByID(result.UserID)
		if err != nil {
			logger.Warn("Order confirmation recipient lookup failed", map[string]interface{}{
				"order_id": result.OrderID,
				"user_id":  result.UserID,
				"error":    err.Error(),
			})
		} else {
			confirmation.Email = user.Email
			confirmation.UserName = user.Name
		}
	}

	if err := s.notifier.NotifyOrderConfirmed(ctx, confirmation); err != nil {
		logger.Error("Order confirmation notification failed", err, map[string]interface{}{
			"order_id": result.OrderID,
		})
	}
}
