package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// ReviewUseCase reseñas de productos y servicios.
type ReviewUseCase struct {
	repo        repository.ReviewRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(
	repo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
) *ReviewUseCase {
	return &ReviewUseCase{repo: repo, productRepo: productRepo, serviceRepo: serviceRepo}
}

// Create registra una reseña (1 a 5 estrellas) sobre un ítem existente.
func (uc *ReviewUseCase) Create(_ context.Context, userID string, item entity.ItemRef, rating int, comment string) (*dto.ReviewResponse, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.itemExists(item); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if item.IsProduct() {
		review.ProductID = item.ID
	} else {
		review.ServiceID = item.ID
	}
	if err := uc.repo.Create(review); err != nil {
		return nil, err
	}
	return toReviewResponse(review), nil
}

// Summary devuelve las reseñas de un ítem con promedio y conteo.
func (uc *ReviewUseCase) Summary(_ context.Context, item entity.ItemRef) (*dto.ReviewSummaryResponse, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	reviews, err := uc.repo.ListByItem(item)
	if err != nil {
		return nil, err
	}
	avg, count, err := uc.repo.AverageByItem(item)
	if err != nil {
		return nil, err
	}

	out := &dto.ReviewSummaryResponse{
		Average: avg,
		Count:   count,
		Reviews: make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		out.Reviews = append(out.Reviews, *toReviewResponse(r))
	}
	return out, nil
}

func (uc *ReviewUseCase) itemExists(item entity.ItemRef) error {
	if item.IsProduct() {
		p, err := uc.productRepo.GetByID(item.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return nil
	}
	s, err := uc.serviceRepo.GetByID(item.ID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	item := entity.ProductRef(r.ProductID)
	if r.ProductID == "" {
		item = entity.ServiceRef(r.ServiceID)
	}
	return &dto.ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ItemType:  item.Kind,
		ItemID:    item.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
