package service

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// maxTokenAttempts bounds the regeneration loop when a public order token
// collides with an existing one. The 32-bit token space makes a second
// collision in a row vanishingly unlikely.
const maxTokenAttempts = 5

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	couponRepo  repository.CouponRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	couponRepo repository.CouponRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		couponRepo:  couponRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder validates the request against user, address, stock and coupon
// state, decrements stock, computes totals, and persists the order with its
// line items in one transaction.
//
// Stock decrements are written line by line as each item validates, and are
// NOT rolled back if a later line fails. This mirrors the legacy placement
// behaviour; see DESIGN.md before changing it.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("failed to resolve user")
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	address, err := s.userRepo.GetAddressByID(ctx, req.AddressID)
	if err != nil {
		s.logger.Error().Err(err).Int64("address_id", req.AddressID).Msg("failed to resolve address")
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}
	if address == nil {
		return nil, model.ErrAddressNotFound
	}
	if address.UserID != user.ID {
		s.logger.Warn().
			Int64("user_id", user.ID).
			Int64("address_id", address.ID).
			Msg("address ownership mismatch")
		return nil, model.ErrAddressNotOwned
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	titles := make(map[int]string, len(req.Items))
	subTotal := decimal.Zero

	for _, line := range req.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			s.logger.Error().Err(err).Int("product_id", line.ProductID).Msg("failed to resolve product")
			return nil, fmt.Errorf("failed to resolve product: %w", err)
		}
		if product == nil {
			return nil, model.ErrProductNotFound
		}

		if product.StockQuantity < line.Quantity {
			s.logger.Warn().
				Int("product_id", product.ID).
				Int("requested", line.Quantity).
				Int("in_stock", product.StockQuantity).
				Msg("insufficient stock")
			return nil, model.NewInsufficientStockError(product.Title)
		}

		// Each decrement is its own write, persisted before the next line
		// is looked at.
		if err := s.productRepo.UpdateStock(ctx, product.ID, product.StockQuantity-line.Quantity); err != nil {
			s.logger.Error().Err(err).Int("product_id", product.ID).Msg("failed to decrement stock")
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subTotal = subTotal.Add(lineTotal)
		titles[product.ID] = product.Title

		items = append(items, model.OrderItem{
			ProductID:  product.ID,
			Quantity:   line.Quantity,
			TotalPrice: lineTotal,
		})
	}

	finalTotal := subTotal
	if req.CouponCode != "" {
		discounted, err := s.applyCoupon(ctx, req.CouponCode, subTotal)
		if err != nil {
			return nil, err
		}
		finalTotal = discounted
	}

	order := &model.Order{
		CustomerName: user.Name,
		Email:        user.Email,
		Status:       model.OrderStatusPlaced,
		OrderDate:    model.Today(),
		Items:        items,
	}

	if err := s.persistOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_token", order.OrderID).
		Int("item_count", len(order.Items)).
		Str("sub_total", subTotal.String()).
		Str("final_total", finalTotal.String()).
		Msg("order placed")

	return buildOrderResponse(order, titles), nil
}

// applyCoupon resolves and validates the coupon, returning the discounted
// total. The discounted figure is reported only; line-item totals are the
// only amounts ever written to the database.
func (s *orderService) applyCoupon(ctx context.Context, code string, subTotal decimal.Decimal) (decimal.Decimal, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to resolve coupon")
		return decimal.Zero, fmt.Errorf("failed to resolve coupon: %w", err)
	}
	if coupon == nil {
		return decimal.Zero, model.ErrInvalidCoupon
	}
	if !coupon.Usable(model.Today()) {
		s.logger.Warn().Str("code", code).Msg("coupon expired or inactive")
		return decimal.Zero, model.ErrCouponExpired
	}

	discount := subTotal.Mul(coupon.DiscountPercentage).Div(oneHundred)

	s.logger.Debug().
		Str("code", code).
		Str("discount", discount.String()).
		Msg("coupon applied")

	return subTotal.Sub(discount), nil
}

// persistOrder writes the order and its line items atomically, regenerating
// the public token on the rare unique-index collision.
func (s *orderService) persistOrder(ctx context.Context, order *model.Order) error {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		order.OrderID = newOrderToken()

		err := s.writeOrderTx(ctx, order)
		if err == nil {
			return nil
		}
		if err == model.ErrOrderTokenTaken {
			s.logger.Warn().
				Str("order_token", order.OrderID).
				Int("attempt", attempt+1).
				Msg("order token collision, regenerating")
			continue
		}
		return err
	}
	return fmt.Errorf("failed to place order: %w", model.ErrOrderTokenTaken)
}

// writeOrderTx performs the single aggregate write: order row plus all line
// items, with the backreference set before either hits the database.
func (s *orderService) writeOrderTx(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return err
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_token", order.OrderID).Msg("failed to commit order")
		return fmt.Errorf("failed to place order: %w", err)
	}

	return nil
}

// GetAll retrieves every order as a public summary, resolving product
// titles per line at read time.
func (s *orderService) GetAll(ctx context.Context) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	idSet := map[int]struct{}{}
	for _, order := range orders {
		for _, item := range order.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]int, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve product titles")
		return nil, fmt.Errorf("failed to resolve product titles: %w", err)
	}

	titles := make(map[int]string, len(products))
	for _, p := range products {
		titles[p.ID] = p.Title
	}

	responses := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *buildOrderResponse(&orders[i], titles))
	}

	return responses, nil
}

// CheckCoupon verifies a coupon code is known, active and unexpired.
func (s *orderService) CheckCoupon(ctx context.Context, code string) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to check coupon")
		return nil, fmt.Errorf("failed to check coupon: %w", err)
	}
	if coupon == nil {
		return nil, model.ErrInvalidCoupon
	}
	if !coupon.Usable(model.Today()) {
		return nil, model.ErrCouponExpired
	}
	return coupon, nil
}

// validateOrderRequest rejects structurally invalid placement requests
// before any state is touched.
func validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeInvalidInput, "order request is required")
	}
	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeInvalidInput, "order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return model.ErrInvalidQuantity
		}
	}
	return nil
}

// newOrderToken derives the 8-character public order token from a fresh
// random UUID, uppercased.
func newOrderToken() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// buildOrderResponse maps a persisted order to its public summary shape.
func buildOrderResponse(order *model.Order, titles map[int]string) *model.OrderResponse {
	items := make([]model.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, model.OrderItemResponse{
			ProductName: titles[item.ProductID],
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		})
	}
	return &model.OrderResponse{
		OrderID:      order.OrderID,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Status:       order.Status,
		OrderDate:    order.OrderDate,
		Items:        items,
	}
}
