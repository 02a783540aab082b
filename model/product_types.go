package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StringList is stored as a JSON array in a TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = out
	return nil
}

type Product struct {
	ID            uuid.UUID       `db:"id" json:"_id"`
	Name          string          `db:"name" json:"name"`
	Category      string          `db:"category" json:"category"`
	Description   string          `db:"description" json:"description"`
	RegularPrice  decimal.Decimal `db:"regular_price" json:"regularPrice"`
	DiscountPrice decimal.Decimal `db:"discount_price" json:"discountPrice"`
	Images        StringList      `db:"images" json:"images"`
	Code          string          `db:"code" json:"code,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// FirstImage returns the cover image, or the storefront placeholder.
func (p Product) FirstImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return PlaceholderImage
}

const PlaceholderImage = "/placeholder.png"

// ProductInput carries the editable fields of a product from the admin forms.
type ProductInput struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	RegularPrice  decimal.Decimal `json:"regularPrice"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Code          string          `json:"code"`
}

func (in *ProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.Code = strings.TrimSpace(in.Code)
}

func (in ProductInput) Validate() error {
	if in.Name == "" {
		return NewValidationError(MsgNameRequired, "name")
	}
	if in.Category == "" {
		return NewValidationError(MsgCategoryRequired, "category")
	}
	if in.RegularPrice.IsNegative() {
		return NewValidationError(MsgInvalidPrice, "regularPrice")
	}
	if in.DiscountPrice.IsNegative() {
		return NewValidationError(MsgInvalidPrice, "discountPrice")
	}
	if in.DiscountPrice.GreaterThan(in.RegularPrice) {
		return NewValidationError(MsgDiscountAboveRegular, "discountPrice")
	}
	return nil
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	RegularPrice  *decimal.Decimal `json:"regularPrice"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	Code          *string          `json:"code"`
}

// Apply merges the patch into p and returns the resulting input for validation.
func (patch ProductPatch) Apply(p Product) ProductInput {
	in := ProductInput{
		Name:          p.Name,
		Category:      p.Category,
		Description:   p.Description,
		RegularPrice:  p.RegularPrice,
		DiscountPrice: p.DiscountPrice,
		Code:          p.Code,
	}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.Category != nil {
		in.Category = *patch.Category
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.RegularPrice != nil {
		in.RegularPrice = *patch.RegularPrice
	}
	if patch.DiscountPrice != nil {
		in.DiscountPrice = *patch.DiscountPrice
	}
	if patch.Code != nil {
		in.Code = *patch.Code
	}
	in.Normalize()
	return in
}

// ProductView is the storefront representation of a product.
type ProductView struct {
	Product
	DiscountPercent        int    `json:"discountPercent"`
	FormattedRegularPrice  string `json:"formattedRegularPrice"`
	FormattedDiscountPrice string `json:"formattedDiscountPrice"`
}

type Category struct {
	ID        uuid.UUID `db:"id" json:"_id"`
	Name      string    `db:"name" json:"name"`
	Image     string    `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type SliderImage struct {
	ID        uuid.UUID `db:"id" json:"_id"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
