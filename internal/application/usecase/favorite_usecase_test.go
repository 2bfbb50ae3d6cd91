package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casabella/casa-bella-api/internal/application/usecase"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

const (
	favTestUserID    = "4f1c7a0e-9b2d-4c3e-8a5f-1d2e3f405060"
	favTestProductID = "a1b2c3d4-e5f6-4789-9abc-def012345678"
	favTestServiceID = "b2c3d4e5-f6a7-4890-8bcd-ef0123456789"
)

// ── fakes ────────────────────────────────────────────────────────────

type memFavoriteRepo struct {
	favorites []*entity.Favorite
}

func (m *memFavoriteRepo) Create(fav *entity.Favorite) error {
	m.favorites = append(m.favorites, fav)
	return nil
}

func (m *memFavoriteRepo) Delete(userID string, item entity.ItemRef) error {
	kept := m.favorites[:0]
	found := false
	for _, f := range m.favorites {
		if f.UserID == userID && m.matches(f, item) {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	m.favorites = kept
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (m *memFavoriteRepo) Exists(userID string, item entity.ItemRef) (bool, error) {
	for _, f := range m.favorites {
		if f.UserID == userID && m.matches(f, item) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFavoriteRepo) ListByUser(userID string) ([]*entity.Favorite, error) {
	var out []*entity.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFavoriteRepo) matches(f *entity.Favorite, item entity.ItemRef) bool {
	if item.IsProduct() {
		return f.ProductID == item.ID
	}
	return f.ServiceID == item.ID
}

type favProductRepo struct {
	product *entity.Product
}

func (f *favProductRepo) GetByID(id string) (*entity.Product, error) {
	if f.product != nil && f.product.ID == id {
		return f.product, nil
	}
	return nil, nil
}

func (f *favProductRepo) Create(*entity.Product) error                            { panic("no usado") }
func (f *favProductRepo) Update(*entity.Product) error                            { panic("no usado") }
func (f *favProductRepo) GetForUpdate(string) (*entity.Product, error)            { panic("no usado") }
func (f *favProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) { panic("no usado") }
func (f *favProductRepo) UpdateStock(string, int) error                           { panic("no usado") }
func (f *favProductRepo) ListLowStock() ([]*entity.Product, error)                { panic("no usado") }

type favServiceRepo struct {
	service *entity.Service
}

func (f *favServiceRepo) GetByID(id string) (*entity.Service, error) {
	if f.service != nil && f.service.ID == id {
		return f.service, nil
	}
	return nil, nil
}

func (f *favServiceRepo) Create(*entity.Service) error        { panic("no usado") }
func (f *favServiceRepo) Update(*entity.Service) error        { panic("no usado") }
func (f *favServiceRepo) List() ([]*entity.Service, error)    { panic("no usado") }

func newFavoriteUseCase() (*usecase.FavoriteUseCase, *memFavoriteRepo) {
	favRepo := &memFavoriteRepo{}
	productRepo := &favProductRepo{product: &entity.Product{
		ID:     favTestProductID,
		Name:   "Esmalte gel rosa",
		Price:  decimal.RequireFromString("120.00"),
		Status: entity.ProductActivo,
	}}
	serviceRepo := &favServiceRepo{service: &entity.Service{
		ID:              favTestServiceID,
		Name:            "Pedicure spa",
		Price:           decimal.RequireFromString("300.00"),
		DurationMinutes: 60,
		CreatedAt:       time.Now(),
	}}
	return usecase.NewFavoriteUseCase(favRepo, productRepo, serviceRepo), favRepo
}

// ── tests ────────────────────────────────────────────────────────────

func TestFavoriteSave_GuardaProductoYServicio(t *testing.T) {
	uc, repo := newFavoriteUseCase()
	ctx := context.Background()

	p, err := uc.Save(ctx, favTestUserID, entity.ProductRef(favTestProductID))
	require.NoError(t, err)
	assert.Equal(t, entity.ItemProducto, p.ItemType)
	assert.Equal(t, favTestProductID, p.ItemID)

	s, err := uc.Save(ctx, favTestUserID, entity.ServiceRef(favTestServiceID))
	require.NoError(t, err)
	assert.Equal(t, entity.ItemServicio, s.ItemType)

	assert.Len(t, repo.favorites, 2)
}

func TestFavoriteSave_RepetirGuardadoDevuelveDuplicado(t *testing.T) {
	uc, repo := newFavoriteUseCase()
	ctx := context.Background()

	_, err := uc.Save(ctx, favTestUserID, entity.ProductRef(favTestProductID))
	require.NoError(t, err)

	_, err = uc.Save(ctx, favTestUserID, entity.ProductRef(favTestProductID))
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, repo.favorites, 1, "el guardado repetido no debe insertar otra fila")

	// el mismo ítem guardado por otro usuario sí procede
	_, err = uc.Save(ctx, "0e9d8c7b-6a5f-4e3d-9c2b-1a0f9e8d7c6b", entity.ProductRef(favTestProductID))
	require.NoError(t, err)
	assert.Len(t, repo.favorites, 2)
}

func TestFavoriteSave_ItemInexistente(t *testing.T) {
	uc, _ := newFavoriteUseCase()

	_, err := uc.Save(context.Background(), favTestUserID, entity.ProductRef("c0ffee00-0000-4000-8000-000000000000"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteRemove_YListado(t *testing.T) {
	uc, _ := newFavoriteUseCase()
	ctx := context.Background()

	_, err := uc.Save(ctx, favTestUserID, entity.ServiceRef(favTestServiceID))
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, favTestUserID, entity.ServiceRef(favTestServiceID)))

	list, err := uc.ListMine(ctx, favTestUserID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// volver a guardar tras quitar no es duplicado
	_, err = uc.Save(ctx, favTestUserID, entity.ServiceRef(favTestServiceID))
	assert.NoError(t, err)
}
