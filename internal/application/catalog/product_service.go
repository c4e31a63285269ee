package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// ProductService handles product and colorway use cases
type ProductService struct {
	productRepo    catalog.ProductRepository
	colorRepo      catalog.ColorRepository
	batchRepo      catalog.BatchRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	colorRepo catalog.ColorRepository,
	batchRepo catalog.BatchRepository,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		colorRepo:   colorRepo,
		batchRepo:   batchRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes and clears the aggregate's pending events
func (s *ProductService) publishDomainEvents(ctx context.Context, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Event delivery is best effort; the state change has already been persisted
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "Product code is already in use")
	}

	product, err := catalog.NewProduct(req.Code, req.Name, req.Unit, catalog.ProductType(req.Type))
	if err != nil {
		return nil, err
	}

	product.Specification = req.Specification
	product.Composition = req.Composition
	product.YarnCount = req.YarnCount
	product.Description = req.Description
	if req.IsWhiteYarn {
		product.MarkWhiteYarn(true)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// UpdateProduct updates a product's attributes
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Specification, req.Composition, req.YarnCount, req.Unit, req.Description); err != nil {
		return nil, err
	}
	if req.IsWhiteYarn != nil {
		product.MarkWhiteYarn(*req.IsWhiteYarn)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// DeleteProduct deletes a product together with its colorways and batches.
// Deletion is refused while any batch still holds stock.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	total, err := s.batchRepo.SumStockByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	if total.IsPositive() {
		return shared.NewDomainError("HAS_STOCK", "Cannot delete a product that still holds stock")
	}

	return s.productRepo.Delete(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts retrieves products with pagination
func (s *ProductService) ListProducts(ctx context.Context, filter ListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := toDomainFilter(filter)

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListWhiteYarns retrieves products usable as grey stock for dyeing
func (s *ProductService) ListWhiteYarns(ctx context.Context, filter ListFilter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindWhiteYarns(ctx, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

// CreateColor creates a new colorway under a product
func (s *ProductService) CreateColor(ctx context.Context, productID uuid.UUID, req CreateColorRequest) (*ColorResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	exists, err := s.colorRepo.ExistsByProductAndCode(ctx, productID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "Color code is already in use for this product")
	}

	color, err := catalog.NewColor(productID, req.Code, req.Name, req.ColorValue)
	if err != nil {
		return nil, err
	}

	if err := s.colorRepo.Save(ctx, color); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, color)

	resp := ToColorResponse(color)
	return &resp, nil
}

// UpdateColor updates a colorway's attributes
func (s *ProductService) UpdateColor(ctx context.Context, id uuid.UUID, name, colorValue, description string) (*ColorResponse, error) {
	color, err := s.colorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := color.Update(name, colorValue, description); err != nil {
		return nil, err
	}

	if err := s.colorRepo.Save(ctx, color); err != nil {
		return nil, err
	}

	resp := ToColorResponse(color)
	return &resp, nil
}

// DiscontinueColor takes a colorway off sale
func (s *ProductService) DiscontinueColor(ctx context.Context, id uuid.UUID) error {
	color, err := s.colorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := color.Discontinue(); err != nil {
		return err
	}
	return s.colorRepo.Save(ctx, color)
}

// ReinstateColor puts a discontinued colorway back on sale
func (s *ProductService) ReinstateColor(ctx context.Context, id uuid.UUID) error {
	color, err := s.colorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := color.Reinstate(); err != nil {
		return err
	}
	return s.colorRepo.Save(ctx, color)
}

// DeleteColor deletes a colorway. Deletion is refused while its batches
// still hold stock.
func (s *ProductService) DeleteColor(ctx context.Context, id uuid.UUID) error {
	color, err := s.colorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	total, err := s.batchRepo.SumStockByColor(ctx, color.ID)
	if err != nil {
		return err
	}
	if total.IsPositive() {
		return shared.NewDomainError("HAS_STOCK", "Cannot delete a colorway that still holds stock")
	}

	return s.colorRepo.Delete(ctx, color.ID)
}

// ListColors retrieves the colorways of a product
func (s *ProductService) ListColors(ctx context.Context, productID uuid.UUID, filter ListFilter) ([]ColorResponse, error) {
	colors, err := s.colorRepo.FindByProduct(ctx, productID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]ColorResponse, len(colors))
	for i := range colors {
		responses[i] = ToColorResponse(&colors[i])
	}
	return responses, nil
}

// toDomainFilter normalizes a list filter into a repository filter
func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
