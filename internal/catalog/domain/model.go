package domain

import "time"

type Product struct {
	ID          int64     `json:"id,string" gorm:"primaryKey;autoIncrement:false"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex:ux_products_slug"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Price       int64     `json:"price" gorm:"not null"`
	ImageURL    string    `json:"imageUrl" gorm:"column:image_url;type:text;not null"`
	Category    string    `json:"category" gorm:"type:varchar(100);not null;index"`
	Featured    bool      `json:"featured" gorm:"not null;default:false"`
	BestSeller  bool      `json:"bestSeller" gorm:"column:best_seller;not null;default:false"`
	Seasonal    bool      `json:"seasonal" gorm:"not null;default:false"`
	Stock       int64     `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
}

func (Product) TableName() string { return "products" }

// NewProduct is the storage-level input for a product. Every backend assigns
// ID and CreatedAt itself.
type NewProduct struct {
	Name        string
	Slug        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
	Featured    bool
	BestSeller  bool
	Seasonal    bool
	Stock       int64
}

// ProductPatch carries the fields of a partial update. Nil means unchanged.
type ProductPatch struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Slug        *string `json:"slug" validate:"omitempty,slug"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category" validate:"omitempty,notblank"`
	Featured    *bool   `json:"featured"`
	BestSeller  *bool   `json:"bestSeller"`
	Seasonal    *bool   `json:"seasonal"`
	Stock       *int64  `json:"stock" validate:"omitempty,gte=0"`
}

// Apply merges the provided fields into p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.BestSeller != nil {
		p.BestSeller = *patch.BestSeller
	}
	if patch.Seasonal != nil {
		p.Seasonal = *patch.Seasonal
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
}

// Columns maps the provided fields to their column names.
func (patch ProductPatch) Columns() map[string]any {
	cols := map[string]any{}
	if patch.Name != nil {
		cols["name"] = *patch.Name
	}
	if patch.Slug != nil {
		cols["slug"] = *patch.Slug
	}
	if patch.Description != nil {
		cols["description"] = *patch.Description
	}
	if patch.Price != nil {
		cols["price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		cols["image_url"] = *patch.ImageURL
	}
	if patch.Category != nil {
		cols["category"] = *patch.Category
	}
	if patch.Featured != nil {
		cols["featured"] = *patch.Featured
	}
	if patch.BestSeller != nil {
		cols["best_seller"] = *patch.BestSeller
	}
	if patch.Seasonal != nil {
		cols["seasonal"] = *patch.Seasonal
	}
	if patch.Stock != nil {
		cols["stock"] = *patch.Stock
	}
	return cols
}

func (patch ProductPatch) Empty() bool {
	return len(patch.Columns()) == 0
}
