package seed

import (
	"context"
	"errors"
	"strings"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
	"github.com/smallbiznis/storefront/internal/user/password"
)

// Products returns the built-in bakery catalog in display order.
func Products() []catalogdomain.NewProduct {
	return []catalogdomain.NewProduct{
		{
			Name:        "Hokkaido Milk Shokupan",
			Slug:        "hokkaido-milk-shokupan",
			Description: "Our classic loaf. Pillowy-soft and deeply umami, made with Hokkaido milk and Japanese flour.",
			Price:       42000,
			ImageURL:    "Hokkaido Milk1.jpg",
			Category:    "signature",
			Featured:    true,
			BestSeller:  true,
			Stock:       20,
		},
		{
			Name:        "Whole Wheat Shokupan",
			Slug:        "whole-wheat-shokupan",
			Description: "Nutty and wholesome while staying cloud-soft. A nutritious take on our signature texture.",
			Price:       39000,
			ImageURL:    "Whole Wheat1.jpg",
			Category:    "signature",
			Stock:       15,
		},
		{
			Name:        "Matcha White Chocolate Shokupan",
			Slug:        "matcha-white-chocolate-shokupan",
			Description: "Earthy matcha swirled with ribbons of creamy white chocolate. Balanced and indulgent.",
			Price:       59000,
			ImageURL:    "Matcha1.jpg",
			Category:    "flavored",
			Featured:    true,
			BestSeller:  true,
			Seasonal:    true,
			Stock:       12,
		},
		{
			Name:        "Dark Chocolate Almond Caramel Shokupan",
			Slug:        "dark-chocolate-almond-caramel-shokupan",
			Description: "Rich cocoa and dark chocolate with caramelized almond praline. Our most decadent seasonal release.",
			Price:       60000,
			ImageURL:    "Matcha2.jpg",
			Category:    "flavored",
			Featured:    true,
			Seasonal:    true,
			Stock:       18,
		},
		{
			Name:        "Sakura Strawberry Anshokupan (Classic)",
			Slug:        "sakura-strawberry-anshokupan-classic",
			Description: "Ciwidey strawberries and red bean paste in a soft, sakura-infused loaf, baked in the traditional square shokupan style.",
			Price:       49000,
			ImageURL:    "Sakura Strawberry1.jpg",
			Category:    "sakura",
			Featured:    true,
			BestSeller:  true,
			Seasonal:    true,
			Stock:       10,
		},
		{
			Name:        "Sakura Strawberry Anshokupan (Yamagata)",
			Slug:        "sakura-strawberry-anshokupan-yamagata",
			Description: "Ciwidey strawberries and red bean paste in a soft, sakura-infused loaf, hand-twisted with an open swirl top.",
			Price:       54000,
			ImageURL:    "Sakura Strawberry5.jpg",
			Category:    "sakura",
			Featured:    true,
			Seasonal:    true,
			Stock:       8,
		},
		{
			Name:        "Matcha Milk Jam",
			Slug:        "matcha-milk-jam",
			Description: "Creamy matcha and sweet milk in a rich, aromatic spread made for our shokupan.",
			Price:       114000,
			ImageURL:    "General Photo3.jpg",
			Category:    "spreads",
			Stock:       15,
		},
		{
			Name:        "All-Natural Strawberry Jam",
			Slug:        "all-natural-strawberry-jam",
			Description: "Ciwidey strawberries preserved at peak ripeness. No preservatives, just fruit.",
			Price:       72000,
			ImageURL:    "Strawberry Jam1.jpg",
			Category:    "spreads",
			Stock:       20,
		},
		{
			Name:        "Yuzu Honey Shokupan",
			Slug:        "yuzu-honey-shokupan",
			Description: "Bright yuzu-infused milk bread finished with a touch of natural honey.",
			Price:       80000,
			ImageURL:    "General Photo5.jpg",
			Category:    "seasonal",
			Seasonal:    true,
			Stock:       8,
		},
		{
			Name:        "Hojicha Black Sesame Shokupan",
			Slug:        "hojicha-black-sesame-shokupan",
			Description: "Roasted hojicha tea and nutty black sesame in an aromatic, grown-up shokupan.",
			Price:       58000,
			ImageURL:    "General Photo4.jpg",
			Category:    "flavored",
			BestSeller:  true,
			Seasonal:    true,
			Stock:       10,
		},
		{
			Name:        "Premium Strawberry Jam Gift Set",
			Slug:        "premium-strawberry-jam-gift-set",
			Description: "Two sizes of our all-natural strawberry jam in gift packaging.",
			Price:       160000,
			ImageURL:    "Strawberry Jam2.jpg",
			Category:    "spreads",
			Featured:    true,
			Stock:       15,
		},
	}
}

// LoadCatalog creates every built-in product through repo.
func LoadCatalog(ctx context.Context, repo catalogdomain.Repository) ([]catalogdomain.Product, error) {
	items := Products()
	out := make([]catalogdomain.Product, 0, len(items))
	for _, item := range items {
		p, err := repo.CreateProduct(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// EnsureCatalog seeds the catalog only when the store has no products.
func EnsureCatalog(ctx context.Context, repo catalogdomain.Repository) (bool, error) {
	existing, err := repo.GetAllProducts(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if _, err := LoadCatalog(ctx, repo); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureAdmin creates the bootstrap user when it does not exist yet. An
// existing user keeps its password.
func EnsureAdmin(ctx context.Context, users userdomain.Repository, username, plain string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return false, errors.New("admin username and password are required")
	}

	existing, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return false, err
	}
	if _, err := users.CreateUser(ctx, userdomain.NewUser{Username: username, PasswordHash: hash}); err != nil {
		if errors.Is(err, userdomain.ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
