package models

// CategoryPayload is the kind-specific document of [KindCategory].
type CategoryPayload struct {
	Name     string `json:"name"`
	IconName string `json:"icon_name,omitempty"`
	Color    string `json:"color,omitempty"`

	// MainCategoryID references the parent category's ServerID
	// when this category is a subcategory.
	MainCategoryID *string `json:"main_category_id,omitempty"`

	// IsIncome scopes the category to income or expense transactions.
	IsIncome   bool  `json:"is_income,omitempty"`
	OrderIndex int32 `json:"order_index,omitempty"`
}
