package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/RyuuShuvi/eshop/internal/checkout/app/commands"
	"github.com/RyuuShuvi/eshop/internal/checkout/app/queries"
	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
	"github.com/RyuuShuvi/eshop/internal/checkout/metrics"
	"github.com/RyuuShuvi/eshop/internal/checkout/ports"
)

// Service bundles the checkout use cases for the API.
type Service struct {
	products          ports.ProductRepository
	shipping          domain.ShippingService
	placeOrderHandler commands.CommandHandler
	shippingStatus    *queries.ShippingStatusQueryHandler
}

// NewService wires required dependencies.
func NewService(
	products ports.ProductRepository,
	shipping domain.ShippingService,
	policy domain.SubmitPolicy,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreHandler := commands.NewPlaceOrderCommandHandler(products, shipping, policy)
	observableHandler := commands.NewObservableCommandHandler(coreHandler, logger, metrics)

	return &Service{
		products:          products,
		shipping:          shipping,
		placeOrderHandler: observableHandler,
		shippingStatus:    queries.NewShippingStatusQueryHandler(shipping),
	}
}

// CreateProductInput captures payload for adding a catalog product. Fields
// are kept dynamically typed so the domain's type validation applies to
// loosely structured payloads.
type CreateProductInput struct {
	Name            any `json:"name"`
	Price           any `json:"price"`
	AvailableAmount any `json:"available_amount"`
}

// ProductView is the read model returned to API callers.
type ProductView struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	AvailableAmount int     `json:"available_amount"`
}

// CreateProduct validates and stores a new catalog product.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	amount := input.AvailableAmount
	// JSON numbers arrive as float64; integral values are narrowed here so
	// the domain still rejects genuinely fractional amounts.
	if f, ok := amount.(float64); ok && f == float64(int(f)) {
		amount = int(f)
	}

	product, err := domain.NewProductFromValues(input.Name, input.Price, amount)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	return productView(product), nil
}

// ListProducts returns the catalog.
func (s *Service) ListProducts(ctx context.Context) ([]ProductView, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, *productView(product))
	}
	return views, nil
}

// PlaceOrderInput captures payload for a checkout request.
type PlaceOrderInput struct {
	Items        []OrderItemInput `json:"items"`
	ShippingType string           `json:"shipping_type"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
}

type OrderItemInput struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// PlaceOrder orchestrates cart building, order placement and shipping
// creation.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*commands.PlaceOrderResult, error) {
	cmd := commands.PlaceOrderCommand{
		ShippingType: input.ShippingType,
	}
	if input.DueDate != nil {
		cmd.DueDate = *input.DueDate
	}
	for _, item := range input.Items {
		cmd.Items = append(cmd.Items, commands.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}

	return s.placeOrderHandler.Handle(ctx, cmd)
}

// CheckShippingStatus returns the current status of a shipping.
func (s *Service) CheckShippingStatus(ctx context.Context, shippingID string) (string, error) {
	return s.shippingStatus.Handle(ctx, queries.ShippingStatusQuery{ShippingID: shippingID})
}

// ListShippingTypes returns the shipping service's supported types.
func (s *Service) ListShippingTypes() []string {
	return s.shipping.ListAvailableShippingTypes()
}

func productView(product *domain.Product) *ProductView {
	return &ProductView{
		Name:            product.Name(),
		Price:           product.Price(),
		AvailableAmount: product.AvailableAmount(),
	}
}
