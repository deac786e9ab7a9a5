package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/observability/logger"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/validation"
	"github.com/smallbiznis/storefront/pkg/db"
	"github.com/smallbiznis/storefront/pkg/telemetry/correlation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	metrics *metrics.Metrics
	backend string
}

func New(p Params) domain.Service {
	backend := "unknown"
	if named, ok := p.Repo.(interface{ Backend() string }); ok {
		backend = named.Backend()
	}
	return &Service{
		log:     p.Log.Named("order.service"),
		repo:    p.Repo,
		metrics: p.Metrics,
		backend: backend,
	}
}

// Place stores the order with the unit prices the client submitted. The total
// is kept as sent.
func (s *Service) Place(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	ctx, _ = correlation.EnsureCorrelationID(ctx)
	order := domain.NewOrder{
		CustomerName:    strings.TrimSpace(req.Order.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.Order.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.Order.CustomerPhone),
		ShippingAddress: strings.TrimSpace(req.Order.ShippingAddress),
		City:            strings.TrimSpace(req.Order.City),
		PostalCode:      strings.TrimSpace(req.Order.PostalCode),
		Total:           req.Order.Total,
	}
	items := make([]domain.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.NewOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	created, err := s.repo.CreateOrder(ctx, order, items)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("place order failed",
			zap.Int("items", len(items)),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.RecordOrderPlaced(ctx, s.backend, len(items))
	logger.WithContext(ctx, s.log).Info("order placed",
		zap.Int64("order_id", created.ID),
		zap.Int("items", len(items)),
		zap.Int64("total", created.Total),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.OrderWithItems, error) {
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	order, err := s.repo.GetOrderByID(ctx, orderID.Int64())
	if err != nil {
		return nil, s.readError(ctx, orderID.Int64(), err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	items, err := s.repo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, s.readError(ctx, order.ID, err)
	}
	if items == nil {
		items = []domain.OrderItem{}
	}
	return &domain.OrderWithItems{Order: order, Items: items}, nil
}

// readError reports an unreachable store as a missing order.
func (s *Service) readError(ctx context.Context, id int64, err error) error {
	if !db.IsConnectionErr(err) {
		return err
	}
	logger.WithContext(ctx, s.log).Warn("order lookup degraded to not found",
		zap.Int64("order_id", id),
		zap.Error(err),
	)
	return domain.ErrNotFound
}
