package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

// DefaultReferencePage tamaño de página por defecto para productos y ubicaciones.
const DefaultReferencePage = 50

// ReferenceUseCase consultas de datos de referencia (productos y ubicaciones).
// El motor de traslados solo los lee; Create se usa para la carga de datos demo.
type ReferenceUseCase struct {
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(productRepo repository.ProductRepository, locationRepo repository.LocationRepository) *ReferenceUseCase {
	return &ReferenceUseCase{productRepo: productRepo, locationRepo: locationRepo}
}

// CreateProduct crea un producto. El nombre se normaliza (NFC, sin espacios laterales) antes de la
// restricción de unicidad.
func (uc *ReferenceUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := normalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// CreateLocation crea una ubicación.
func (uc *ReferenceUseCase) CreateLocation(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := normalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	l := &entity.Location{
		ID:           uuid.New().String(),
		Name:         name,
		OtherDetails: in.OtherDetails,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.locationRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	out := toLocationResponse(l)
	return &out, nil
}

// GetProduct obtiene un producto por ID.
func (uc *ReferenceUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductResponse(p)
	return &out, nil
}

// GetLocation obtiene una ubicación por ID.
func (uc *ReferenceUseCase) GetLocation(ctx context.Context, id string) (*dto.LocationResponse, error) {
	l, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	out := toLocationResponse(l)
	return &out, nil
}

// ListProducts lista productos por nombre con paginación.
func (uc *ReferenceUseCase) ListProducts(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage(DefaultReferencePage, 200)
	limit, offset = page.Limit, page.Offset
	list, err := uc.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLocations lista ubicaciones por nombre con paginación.
func (uc *ReferenceUseCase) ListLocations(ctx context.Context, limit, offset int) (*dto.LocationListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage(DefaultReferencePage, 200)
	limit, offset = page.Limit, page.Offset
	list, err := uc.locationRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		OtherDetails: l.OtherDetails,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
