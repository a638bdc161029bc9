package services

import (
	"context"
	"encoding/json"
	"time"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.uber.org/zap"
)

// EventPublisher delivers product lifecycle events to a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *zap.Logger) *ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("component", "product_service")),
		now:       time.Now,
	}
}

// WithClock replaces the time source used for timestamps.
func (s *ProductService) WithClock(now func() time.Time) *ProductService {
	s.now = now
	return s
}

// timestamp is truncated to what every supported store can hold.
func (s *ProductService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// FindAll retrieves all products.
func (s *ProductService) FindAll(ctx context.Context) ([]models.ProductResponse, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.ToResponses(products), nil
}

// FindByID retrieves a single product by its ID.
func (s *ProductService) FindByID(ctx context.Context, id uint) (*models.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := product.ToResponse()
	return &resp, nil
}

// FindByName retrieves the products whose name contains name, ignoring case.
func (s *ProductService) FindByName(ctx context.Context, name string) ([]models.ProductResponse, error) {
	products, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return models.ToResponses(products), nil
}

// Count returns the number of products.
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Create validates fields and stores a new product.
func (s *ProductService) Create(ctx context.Context, fields models.RawFields) (*models.ProductResponse, error) {
	input, err := models.DecodeProductInput(fields)
	if err != nil {
		return nil, apperror.BadRequest(err)
	}

	product := input.NewProduct()
	now := s.timestamp()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, apperror.BadRequest(err)
	}

	resp := product.ToResponse()
	s.publish(models.EventProductCreated, product.ID, &resp)
	return &resp, nil
}

// Update overwrites the fields present in fields on an existing product.
// A missing product yields apperror.ErrNotFound; any other failure is a bad
// request.
func (s *ProductService) Update(ctx context.Context, id uint, fields models.RawFields) (*models.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := models.ApplyFields(product, fields); err != nil {
		return nil, apperror.BadRequest(err)
	}

	now := s.timestamp()
	if now.Before(product.CreatedAt) {
		now = product.CreatedAt
	}
	product.UpdatedAt = now

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, apperror.BadRequest(err)
	}

	resp := product.ToResponse()
	s.publish(models.EventProductUpdated, product.ID, &resp)
	return &resp, nil
}

// Delete permanently removes a product by its ID.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(models.EventProductDeleted, id, nil)
	return nil
}

// publish never fails the caller; broker problems are only logged.
func (s *ProductService) publish(eventType string, productID uint, product *models.ProductResponse) {
	if s.publisher == nil {
		return
	}

	event := models.NewProductEvent(eventType, productID, product, s.timestamp())
	body, err := json.Marshal(event)
	if err != nil {
		s.log.Warn("failed to marshal product event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		s.log.Warn("failed to publish product event",
			zap.String("type", eventType),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return
	}
	s.log.Debug("published product event", zap.String("type", eventType), zap.Uint("product_id", productID))
}
