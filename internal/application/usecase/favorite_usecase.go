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

// FavoriteUseCase guardados (wishlist) del usuario.
type FavoriteUseCase struct {
	repo        repository.FavoriteRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
}

// NewFavoriteUseCase construye el caso de uso.
func NewFavoriteUseCase(
	repo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
) *FavoriteUseCase {
	return &FavoriteUseCase{repo: repo, productRepo: productRepo, serviceRepo: serviceRepo}
}

// Save guarda un ítem. Guardar dos veces el mismo ítem devuelve ErrDuplicate.
func (uc *FavoriteUseCase) Save(_ context.Context, userID string, item entity.ItemRef) (*dto.FavoriteResponse, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := uc.itemExists(item); err != nil {
		return nil, err
	}
	saved, err := uc.repo.Exists(userID, item)
	if err != nil {
		return nil, err
	}
	if saved {
		return nil, domain.ErrDuplicate
	}

	fav := &entity.Favorite{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if item.IsProduct() {
		fav.ProductID = item.ID
	} else {
		fav.ServiceID = item.ID
	}
	if err := uc.repo.Create(fav); err != nil {
		return nil, err
	}
	return toFavoriteResponse(fav), nil
}

// Remove quita un ítem guardado.
func (uc *FavoriteUseCase) Remove(_ context.Context, userID string, item entity.ItemRef) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return uc.repo.Delete(userID, item)
}

// ListMine lista los guardados del usuario.
func (uc *FavoriteUseCase) ListMine(_ context.Context, userID string) ([]dto.FavoriteResponse, error) {
	favs, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FavoriteResponse, 0, len(favs))
	for _, f := range favs {
		out = append(out, *toFavoriteResponse(f))
	}
	return out, nil
}

func (uc *FavoriteUseCase) itemExists(item entity.ItemRef) error {
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

func toFavoriteResponse(f *entity.Favorite) *dto.FavoriteResponse {
	item := entity.ProductRef(f.ProductID)
	if f.ProductID == "" {
		item = entity.ServiceRef(f.ServiceID)
	}
	return &dto.FavoriteResponse{
		ID:        f.ID,
		ItemType:  item.Kind,
		ItemID:    item.ID,
		CreatedAt: f.CreatedAt,
	}
}
