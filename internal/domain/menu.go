package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          int64           `json:"id"`
	BusinessID  int64           `json:"business_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    *string         `json:"image_url"`
	IsAvailable bool            `json:"is_available"`
	SortOrder   int             `json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MenuItemInput holds the owner-editable fields of a menu item.
type MenuItemInput struct {
	Name        string
	Description *string
	Price       *decimal.Decimal
	Category    string
	ImageURL    *string
	IsAvailable bool
	SortOrder   int
}

// Validate trims the input in place and checks the required fields.
func (in *MenuItemInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = NormalizeOptional(in.Description)
	in.ImageURL = NormalizeOptional(in.ImageURL)

	if in.Name == "" || in.Price == nil || in.Category == "" {
		return NewValidationError("Name, price, and category are required")
	}
	if in.Price.IsNegative() {
		return NewValidationError("Price must not be negative")
	}
	if in.Price.Round(2).GreaterThan(MaxAmount) {
		return NewValidationError("Price exceeds the maximum amount")
	}
	return nil
}

// Apply copies the input onto item. BusinessID is never touched.
func (in *MenuItemInput) Apply(item *MenuItem) {
	item.Name = in.Name
	item.Description = in.Description
	item.Price = in.Price.Round(2)
	item.Category = in.Category
	item.ImageURL = in.ImageURL
	item.IsAvailable = in.IsAvailable
	item.SortOrder = in.SortOrder
}

// ImportRow is one untyped row of a bulk menu import.
type ImportRow struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
}

// ToInput validates the row. row is the 1-based position used in the error text.
// Imported items are always available.
func (r ImportRow) ToInput(row int) (*MenuItemInput, error) {
	name := strings.TrimSpace(r.Name)
	category := strings.TrimSpace(r.Category)
	if name == "" || strings.TrimSpace(r.Price) == "" || category == "" {
		return nil, NewValidationError("Row %d: Missing required fields (name, price, category)", row)
	}

	price, err := ParsePrice(r.Price)
	if err != nil {
		return nil, NewValidationError("Row %d: Invalid price %q", row, r.Price)
	}

	desc := r.Description
	return &MenuItemInput{
		Name:        name,
		Description: NormalizeOptional(&desc),
		Price:       &price,
		Category:    category,
		IsAvailable: true,
	}, nil
}

// ImportResult reports a partially successful bulk import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

func RowStoreError(row int) string {
	return fmt.Sprintf("Row %d: Database error", row)
}
