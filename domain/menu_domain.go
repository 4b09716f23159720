package domain

var (
	MessageSuccessGetMenu = "menu retrieved successfully"
	MessageFailedGetMenu  = "failed to retrieve menu"
)

type (
	ModifierOptionResponse struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		PriceDelta int64  `json:"price_delta"`
	}

	ModifierGroupResponse struct {
		ID         string                   `json:"id"`
		Name       string                   `json:"name"`
		IsRequired bool                     `json:"is_required"`
		MaxSelect  int                      `json:"max_select"`
		Options    []ModifierOptionResponse `json:"options"`
	}

	MenuItemResponse struct {
		ID             string                  `json:"id"`
		Name           string                  `json:"name"`
		Description    string                  `json:"description,omitempty"`
		Price          int64                   `json:"price"`
		ImageURL       string                  `json:"image_url,omitempty"`
		ModifierGroups []ModifierGroupResponse `json:"modifier_groups"`
	}

	CategoryResponse struct {
		ID    string             `json:"id"`
		Name  string             `json:"name"`
		Items []MenuItemResponse `json:"items"`
	}
)
