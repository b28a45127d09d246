package usecase

import (
	"context"

	"roomscout/internal/pkg/errs"
)

var ErrMissingDeviceID = errs.New("device id is required")

// Favorite is one saved room reference for a device. Devices are anonymous;
// the identifier comes from the client and is never validated beyond
// non-emptiness.
type Favorite struct {
	DeviceID   string
	BusinessID string
	BizItemID  string
}

type FavoriteRepository interface {
	// Add stores the favorite and reports whether a new row was created.
	// Saving an already-saved room is not an error.
	Add(ctx context.Context, fav Favorite) (created bool, err error)
	Remove(ctx context.Context, fav Favorite) error
	ListByDevice(ctx context.Context, deviceID string) ([]Favorite, error)
}

type FavoritesUseCase interface {
	Save(ctx context.Context, deviceID, businessID, bizItemID string) (created bool, err error)
	Delete(ctx context.Context, deviceID, businessID, bizItemID string) error
	List(ctx context.Context, deviceID string) ([]Favorite, error)
}

type favoritesUseCaseImpl struct {
	repo FavoriteRepository
}

func NewFavoritesUseCase(repo FavoriteRepository) FavoritesUseCase {
	return &favoritesUseCaseImpl{repo: repo}
}

func (u *favoritesUseCaseImpl) Save(ctx context.Context, deviceID, businessID, bizItemID string) (bool, error) {
	if deviceID == "" {
		return false, ErrMissingDeviceID
	}
	return u.repo.Add(ctx, Favorite{DeviceID: deviceID, BusinessID: businessID, BizItemID: bizItemID})
}

func (u *favoritesUseCaseImpl) Delete(ctx context.Context, deviceID, businessID, bizItemID string) error {
	if deviceID == "" {
		return ErrMissingDeviceID
	}
	return u.repo.Remove(ctx, Favorite{DeviceID: deviceID, BusinessID: businessID, BizItemID: bizItemID})
}

func (u *favoritesUseCaseImpl) List(ctx context.Context, deviceID string) ([]Favorite, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}
	return u.repo.ListByDevice(ctx, deviceID)
}
