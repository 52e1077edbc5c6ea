package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Business is a tenant: one seller with its own slug-addressed storefront.
type Business struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	OwnerUserID    string    `json:"owner_user_id"`
	Description    *string   `json:"description"`
	Address        *string   `json:"address"`
	Phone          *string   `json:"phone"`
	PrimaryColor   *string   `json:"primary_color"`
	SecondaryColor *string   `json:"secondary_color"`
	CustomLinkURL  *string   `json:"custom_link_url"`
	CustomLinkText *string   `json:"custom_link_text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Storefront is the public projection of a business.
type Storefront struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    *string `json:"description"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	CustomLinkURL  *string `json:"custom_link_url"`
	CustomLinkText *string `json:"custom_link_text"`
}

func (b *Business) Storefront() *Storefront {
	return &Storefront{
		ID:             b.ID,
		Name:           b.Name,
		Slug:           b.Slug,
		Description:    b.Description,
		Address:        b.Address,
		Phone:          b.Phone,
		PrimaryColor:   b.PrimaryColor,
		SecondaryColor: b.SecondaryColor,
		CustomLinkURL:  b.CustomLinkURL,
		CustomLinkText: b.CustomLinkText,
	}
}

// BusinessPatch is a partial update. Nil or empty fields keep the stored
// value, except the custom link pair which is always written: nil clears it.
type BusinessPatch struct {
	Name           *string
	Description    *string
	Address        *string
	Phone          *string
	PrimaryColor   *string
	SecondaryColor *string
	CustomLinkURL  *string
	CustomLinkText *string
}

// Apply merges the patch into b.
func (p BusinessPatch) Apply(b *Business) {
	if v := present(p.Name); v != nil {
		b.Name = *v
	}
	b.Description = keep(b.Description, p.Description)
	b.Address = keep(b.Address, p.Address)
	b.Phone = keep(b.Phone, p.Phone)
	b.PrimaryColor = keep(b.PrimaryColor, p.PrimaryColor)
	b.SecondaryColor = keep(b.SecondaryColor, p.SecondaryColor)
	b.CustomLinkURL = p.CustomLinkURL
	b.CustomLinkText = p.CustomLinkText
}

// NameChanged reports whether applying the patch would rename the business.
func (p BusinessPatch) NameChanged(current string) bool {
	v := present(p.Name)
	return v != nil && !strings.EqualFold(*v, current)
}

func keep(current, next *string) *string {
	if v := present(next); v != nil {
		return v
	}
	return current
}

func present(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

const fallbackSlug = "business"

// Slugify lower-cases name, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims hyphens from both ends.
func Slugify(name string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// SlugCandidate returns the n-th candidate for base: base itself for n == 1,
// then base-2, base-3 and so on.
func SlugCandidate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// NormalizeOptional trims v and turns blank strings into nil.
func NormalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
