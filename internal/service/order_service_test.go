package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []int) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, id, stockQuantity int) error {
	args := m.Called(ctx, id, stockQuantity)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) CreateAddress(ctx context.Context, a *model.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockUserRepository) GetAddressByID(ctx context.Context, id int64) (*model.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCouponRepository is a mock implementation of CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Upsert(ctx context.Context, c *model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

var orderTokenPattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

type orderMocks struct {
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	userRepo    *MockUserRepository
	couponRepo  *MockCouponRepository
	tx          *MockTx
}

func newOrderService(t *testing.T) (OrderService, *orderMocks) {
	t.Helper()
	m := &orderMocks{
		orderRepo:   new(MockOrderRepository),
		productRepo: new(MockProductRepository),
		userRepo:    new(MockUserRepository),
		couponRepo:  new(MockCouponRepository),
		tx:          new(MockTx),
	}
	svc := NewOrderService(m.orderRepo, m.productRepo, m.userRepo, m.couponRepo, zerolog.Nop())
	return svc, m
}

func testUser() *model.User {
	return &model.User{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com", Password: "secret"}
}

func testAddress(userID int64) *model.Address {
	return &model.Address{ID: 10, Street: "1 Main St", City: "Springfield", ZipCode: "12345", UserID: userID}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	req := &model.OrderRequest{
		UserID:    1,
		AddressID: 10,
		Items: []model.OrderItemRequest{
			{ProductID: 100, Quantity: 3},
			{ProductID: 200, Quantity: 1},
		},
	}

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)

	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99"), StockQuantity: 5,
	}, nil)
	m.productRepo.On("GetByID", ctx, 200).Return(&model.Product{
		ID: 200, Title: "Canvas Bag", Price: mustDecimal(t, "7.50"), StockQuantity: 2,
	}, nil)
	m.productRepo.On("UpdateStock", ctx, 100, 2).Return(nil)
	m.productRepo.On("UpdateStock", ctx, 200, 1).Return(nil)

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.orderRepo.On("CreateOrder", ctx, m.tx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(2).(*model.Order)
			order.ID = 42
		}).
		Return(nil)
	m.orderRepo.On("CreateOrderItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)

	resp, err := svc.PlaceOrder(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Regexp(t, orderTokenPattern, resp.OrderID)
	assert.Equal(t, "Ada Lovelace", resp.CustomerName)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Equal(t, model.OrderStatusPlaced, resp.Status)
	require.Len(t, resp.Items, 2)

	// 19.99 * 3 = 59.97 exactly, no float drift
	assert.Equal(t, "Graphene Tee", resp.Items[0].ProductName)
	assert.True(t, resp.Items[0].TotalPrice.Equal(mustDecimal(t, "59.97")),
		"expected 59.97, got %s", resp.Items[0].TotalPrice)
	assert.True(t, resp.Items[1].TotalPrice.Equal(mustDecimal(t, "7.50")),
		"expected 7.50, got %s", resp.Items[1].TotalPrice)

	m.productRepo.AssertExpectations(t)
	m.orderRepo.AssertExpectations(t)
	m.tx.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_CouponDiscount(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	req := &model.OrderRequest{
		UserID:     1,
		AddressID:  10,
		CouponCode: "SAVE10",
		Items:      []model.OrderItemRequest{{ProductID: 100, Quantity: 2}},
	}

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)
	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "50.00"), StockQuantity: 5,
	}, nil)
	m.productRepo.On("UpdateStock", ctx, 100, 3).Return(nil)

	m.couponRepo.On("GetByCode", ctx, "SAVE10").Return(&model.Coupon{
		ID: 1, Code: "SAVE10", DiscountPercentage: mustDecimal(t, "10"), Active: true,
	}, nil)

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.orderRepo.On("CreateOrder", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(nil)
	m.orderRepo.On("CreateOrderItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)

	resp, err := svc.PlaceOrder(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	// The line total is the undiscounted snapshot; the discount only
	// affects the computed final total, which is never persisted.
	assert.True(t, resp.Items[0].TotalPrice.Equal(mustDecimal(t, "100.00")))

	m.couponRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_UserNotFound(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:    99,
		AddressID: 10,
		Items:     []model.OrderItemRequest{{ProductID: 100, Quantity: 1}},
	})

	assert.Equal(t, model.ErrUserNotFound, err)
}

func TestOrderService_PlaceOrder_AddressNotFound(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(99)).Return(nil, nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:    1,
		AddressID: 99,
		Items:     []model.OrderItemRequest{{ProductID: 100, Quantity: 1}},
	})

	assert.Equal(t, model.ErrAddressNotFound, err)
}

func TestOrderService_PlaceOrder_AddressNotOwned(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(2), nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:    1,
		AddressID: 10,
		Items:     []model.OrderItemRequest{{ProductID: 100, Quantity: 1}},
	})

	assert.Equal(t, model.ErrAddressNotOwned, err)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)
	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99"), StockQuantity: 2,
	}, nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:    1,
		AddressID: 10,
		Items:     []model.OrderItemRequest{{ProductID: 100, Quantity: 3}},
	})

	require.Error(t, err)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeConflict, domainErr.Code)
	assert.Contains(t, domainErr.Message, "Insufficient stock")

	// Stock must be left untouched when the only line fails.
	m.productRepo.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything)
	m.orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_PlaceOrder_LaterLineFailureKeepsEarlierDecrement(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)
	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99"), StockQuantity: 5,
	}, nil)
	m.productRepo.On("GetByID", ctx, 200).Return(&model.Product{
		ID: 200, Title: "Canvas Bag", Price: mustDecimal(t, "7.50"), StockQuantity: 1,
	}, nil)
	m.productRepo.On("UpdateStock", ctx, 100, 3).Return(nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:    1,
		AddressID: 10,
		Items: []model.OrderItemRequest{
			{ProductID: 100, Quantity: 2},
			{ProductID: 200, Quantity: 5},
		},
	})

	require.Error(t, err)

	// The first line's decrement was already written and stays written;
	// no order is persisted.
	m.productRepo.AssertCalled(t, "UpdateStock", ctx, 100, 3)
	m.orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_PlaceOrder_InvalidCoupon(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)
	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99"), StockQuantity: 5,
	}, nil)
	m.productRepo.On("UpdateStock", ctx, 100, 4).Return(nil)
	m.couponRepo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:     1,
		AddressID:  10,
		CouponCode: "NOPE",
		Items:      []model.OrderItemRequest{{ProductID: 100, Quantity: 1}},
	})

	assert.Equal(t, model.ErrInvalidCoupon, err)
	m.orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_PlaceOrder_ExpiredCoupon(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	expired := model.NewDate(model.Today().AddDate(0, 0, -1))

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)
	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99"), StockQuantity: 5,
	}, nil)
	m.productRepo.On("UpdateStock", ctx, 100, 4).Return(nil)
	m.couponRepo.On("GetByCode", ctx, "OLD").Return(&model.Coupon{
		ID: 1, Code: "OLD", DiscountPercentage: mustDecimal(t, "10"),
		Active: true, ExpiryDate: &expired,
	}, nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:     1,
		AddressID:  10,
		CouponCode: "OLD",
		Items:      []model.OrderItemRequest{{ProductID: 100, Quantity: 1}},
	})

	assert.Equal(t, model.ErrCouponExpired, err)
}

func TestOrderService_PlaceOrder_InactiveCoupon(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)
	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99"), StockQuantity: 5,
	}, nil)
	m.productRepo.On("UpdateStock", ctx, 100, 4).Return(nil)
	m.couponRepo.On("GetByCode", ctx, "DISABLED").Return(&model.Coupon{
		ID: 1, Code: "DISABLED", DiscountPercentage: mustDecimal(t, "10"), Active: false,
	}, nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:     1,
		AddressID:  10,
		CouponCode: "DISABLED",
		Items:      []model.OrderItemRequest{{ProductID: 100, Quantity: 1}},
	})

	assert.Equal(t, model.ErrCouponExpired, err)
}

func TestOrderService_PlaceOrder_InvalidQuantity(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.PlaceOrder(context.Background(), &model.OrderRequest{
		UserID:    1,
		AddressID: 10,
		Items:     []model.OrderItemRequest{{ProductID: 100, Quantity: 0}},
	})

	assert.Equal(t, model.ErrInvalidQuantity, err)
}

func TestOrderService_PlaceOrder_EmptyItems(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.PlaceOrder(context.Background(), &model.OrderRequest{UserID: 1, AddressID: 10})

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInvalidInput, domainErr.Code)
}

func TestOrderService_PlaceOrder_TokenCollisionRetries(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)
	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99"), StockQuantity: 5,
	}, nil)
	m.productRepo.On("UpdateStock", ctx, 100, 4).Return(nil)

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.orderRepo.On("CreateOrder", ctx, m.tx, mock.AnythingOfType("*model.Order")).
		Return(model.ErrOrderTokenTaken).Once()
	m.orderRepo.On("CreateOrder", ctx, m.tx, mock.AnythingOfType("*model.Order")).
		Return(nil).Once()
	m.orderRepo.On("CreateOrderItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Rollback", ctx).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)

	resp, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:    1,
		AddressID: 10,
		Items:     []model.OrderItemRequest{{ProductID: 100, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Regexp(t, orderTokenPattern, resp.OrderID)
	m.orderRepo.AssertNumberOfCalls(t, "CreateOrder", 2)
}

func TestOrderService_PlaceOrder_CommitFailure(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testUser(), nil)
	m.userRepo.On("GetAddressByID", ctx, int64(10)).Return(testAddress(1), nil)
	m.productRepo.On("GetByID", ctx, 100).Return(&model.Product{
		ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99"), StockQuantity: 5,
	}, nil)
	m.productRepo.On("UpdateStock", ctx, 100, 4).Return(nil)

	m.orderRepo.On("BeginTx", ctx).Return(m.tx, nil)
	m.orderRepo.On("CreateOrder", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(nil)
	m.orderRepo.On("CreateOrderItems", ctx, m.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	m.tx.On("Commit", ctx).Return(errors.New("connection reset"))
	m.tx.On("Rollback", ctx).Return(nil)

	_, err := svc.PlaceOrder(ctx, &model.OrderRequest{
		UserID:    1,
		AddressID: 10,
		Items:     []model.OrderItemRequest{{ProductID: 100, Quantity: 1}},
	})

	require.Error(t, err)
}

func TestOrderService_GetAll(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	orders := []model.Order{
		{
			ID: 1, OrderID: "AB12CD34", CustomerName: "Ada Lovelace",
			Email: "ada@example.com", Status: model.OrderStatusPlaced,
			OrderDate: model.Today(),
			Items: []model.OrderItem{
				{ID: 1, OrderID: 1, ProductID: 100, Quantity: 3, TotalPrice: mustDecimal(t, "59.97")},
			},
		},
	}

	m.orderRepo.On("GetAll", ctx).Return(orders, nil)
	m.productRepo.On("GetByIDs", ctx, []int{100}).Return([]model.Product{
		{ID: 100, Title: "Graphene Tee", Price: mustDecimal(t, "19.99")},
	}, nil)

	responses, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	assert.Equal(t, "AB12CD34", responses[0].OrderID)
	require.Len(t, responses[0].Items, 1)
	assert.Equal(t, "Graphene Tee", responses[0].Items[0].ProductName)
	assert.True(t, responses[0].Items[0].TotalPrice.Equal(mustDecimal(t, "59.97")))
}

func TestOrderService_CheckCoupon(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.couponRepo.On("GetByCode", ctx, "SAVE10").Return(&model.Coupon{
		ID: 1, Code: "SAVE10", DiscountPercentage: mustDecimal(t, "10"), Active: true,
	}, nil)
	m.couponRepo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

	coupon, err := svc.CheckCoupon(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)

	_, err = svc.CheckCoupon(ctx, "NOPE")
	assert.Equal(t, model.ErrInvalidCoupon, err)
}
