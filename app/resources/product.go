// Package resources shapes domain models into the JSON the API returns.
package resources

import (
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/resource"
)

// ProductCard is the compact shape used by list endpoints (catalogue,
// search, trending, recommended, starred) — just what a product card renders.
func ProductCard(p store.Product) resource.Map {
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return resource.Map{
		"id":         p.ID,
		"title":      p.Title,
		"priceCents": p.PriceCents,
		"rating":     p.Rating,
		"tags":       p.Tags,
		"image":      image,
		"stock":      p.Stock,
	}
}

// ProductDetail is the full shape used by the product page.
func ProductDetail(p store.Product) resource.Map {
	return resource.Map{
		"id":          p.ID,
		"title":       p.Title,
		"priceCents":  p.PriceCents,
		"rating":      p.Rating,
		"tags":        p.Tags,
		"images":      p.Images,
		"specs":       p.Specs,
		"stock":       p.Stock,
		"description": p.Description,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}
