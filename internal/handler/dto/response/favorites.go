package response

import "roomscout/internal/usecase"

type FavoriteResponse struct {
	BusinessID string `json:"businessId"`
	BizItemID  string `json:"bizItemId"`
}

type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

func FromFavorites(favorites []usecase.Favorite) FavoriteListResponse {
	items := make([]FavoriteResponse, len(favorites))
	for i, fav := range favorites {
		items[i] = FavoriteResponse{
			BusinessID: fav.BusinessID,
			BizItemID:  fav.BizItemID,
		}
	}
	return FavoriteListResponse{Favorites: items}
}
