package menu

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"context"
)

type (
	MenuService interface {
		GetMenu(ctx context.Context) ([]domain.CategoryResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
	}
)

func NewMenuService(menuRepository MenuRepository) MenuService {
	return &menuService{
		menuRepository: menuRepository,
	}
}

func (s *menuService) GetMenu(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.menuRepository.GetActiveCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		// empty categories are hidden from customers
		if len(category.Items) == 0 {
			continue
		}
		items := make([]domain.MenuItemResponse, 0, len(category.Items))
		for _, item := range category.Items {
			items = append(items, toMenuItemResponse(item))
		}
		result = append(result, domain.CategoryResponse{
			ID:    category.ID.String(),
			Name:  category.Name,
			Items: items,
		})
	}
	return result, nil
}

func toMenuItemResponse(item *entities.MenuItem) domain.MenuItemResponse {
	groups := make([]domain.ModifierGroupResponse, 0, len(item.ModifierGroups))
	for _, group := range item.ModifierGroups {
		options := make([]domain.ModifierOptionResponse, 0, len(group.Options))
		for _, option := range group.Options {
			options = append(options, domain.ModifierOptionResponse{
				ID:         option.ID.String(),
				Name:       option.Name,
				PriceDelta: option.PriceDelta,
			})
		}
		groups = append(groups, domain.ModifierGroupResponse{
			ID:         group.ID.String(),
			Name:       group.Name,
			IsRequired: group.IsRequired,
			MaxSelect:  group.MaxSelect,
			Options:    options,
		})
	}
	return domain.MenuItemResponse{
		ID:             item.ID.String(),
		Name:           item.Name,
		Description:    item.Description,
		Price:          item.Price,
		ImageURL:       item.ImageURL,
		ModifierGroups: groups,
	}
}
