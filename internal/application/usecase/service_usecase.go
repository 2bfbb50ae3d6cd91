package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
	"github.com/casabella/casa-bella-api/internal/infrastructure/cache"
	"github.com/casabella/casa-bella-api/pkg/logger"
)

// ServiceUseCase casos de uso CRUD de los servicios del salón.
type ServiceUseCase struct {
	repo  repository.ServiceRepository
	cache cache.CatalogCache
	log   *logger.Logger
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, c cache.CatalogCache, log *logger.Logger) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, cache: c, log: log}
}

// Create crea un servicio nuevo (solo admin).
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Price.LessThan(decimal.Zero) || in.DurationMinutes < 5 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	service := &entity.Service{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(service); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toServiceResponse(service), nil
}

// GetByID obtiene un servicio por ID.
func (uc *ServiceUseCase) GetByID(_ context.Context, id string) (*dto.ServiceResponse, error) {
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	return toServiceResponse(service), nil
}

// Update actualiza un servicio (solo admin).
func (uc *ServiceUseCase) Update(ctx context.Context, id string, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Price.LessThan(decimal.Zero) || in.DurationMinutes < 5 {
		return nil, domain.ErrInvalidInput
	}
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	service.Name = in.Name
	service.Description = in.Description
	service.Price = in.Price
	service.DurationMinutes = in.DurationMinutes
	service.UpdatedAt = time.Now()
	if err := uc.repo.Update(service); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toServiceResponse(service), nil
}

// List lista todos los servicios, con caché.
func (uc *ServiceUseCase) List(ctx context.Context) ([]dto.ServiceResponse, error) {
	const key = "all"
	if cached, ok, err := uc.cache.GetServices(ctx, key); err == nil && ok {
		return toServiceResponses(cached), nil
	} else if err != nil {
		uc.log.Warn().Err(err).Msg("catálogo: lectura de caché falló")
	}

	services, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	if err := uc.cache.SetServices(ctx, key, services, catalogTTL); err != nil {
		uc.log.Warn().Err(err).Msg("catálogo: escritura de caché falló")
	}
	return toServiceResponses(services), nil
}

func (uc *ServiceUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("catálogo: invalidación de caché falló")
	}
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toServiceResponses(services []*entity.Service) []dto.ServiceResponse {
	out := make([]dto.ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, *toServiceResponse(s))
	}
	return out
}
