// Package resource provides API resource transformers: small functions that
// shape a domain model into exactly the JSON map an endpoint should return.
//
// Define a transformer:
//
//	func ProductCard(p store.Product) resource.Map {
//	    return resource.Map{
//	        "id":         p.ID,
//	        "title":      p.Title,
//	        "priceCents": p.PriceCents,
//	        "rating":     p.Rating,
//	    }
//	}
//
// Respond:
//
//	resource.One(product, ProductCard).Respond(w)
//	resource.Many(products, ProductCard).WithMeta(resource.Map{"count": len(products)}).Respond(w)
package resource

import (
	"encoding/json"
	"net/http"
)

// Map is the output shape of a transformer.
type Map = map[string]interface{}

// Transformer converts one model instance into a Map.
type Transformer[T any] func(T) Map

// ------------------- Single resource -------------------

// Resource wraps a single model with its transformer.
type Resource[T any] struct {
	transform Transformer[T]
	data      T
	meta      Map
}

// One creates a Resource for a single model instance.
func One[T any](data T, t Transformer[T]) *Resource[T] {
	return &Resource[T]{transform: t, data: data}
}

// WithMeta attaches additional metadata to the response envelope.
func (r *Resource[T]) WithMeta(meta Map) *Resource[T] {
	r.meta = meta
	return r
}

// MarshalJSON implements json.Marshaler so a Resource can be nested.
func (r *Resource[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.transform(r.data))
}

// Respond writes the resource as JSON with status 200.
func (r *Resource[T]) Respond(w http.ResponseWriter) {
	out := Map{"data": r.transform(r.data)}
	if r.meta != nil {
		out["meta"] = r.meta
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------- Collection resource -------------------

// Collection wraps a slice of models with a transformer.
type Collection[T any] struct {
	transform Transformer[T]
	items     []T
	meta      Map
}

// Many creates a Collection from a slice.
func Many[T any](items []T, t Transformer[T]) *Collection[T] {
	return &Collection[T]{transform: t, items: items}
}

// WithMeta attaches extra metadata.
func (c *Collection[T]) WithMeta(meta Map) *Collection[T] {
	c.meta = meta
	return c
}

// Respond writes the collection as JSON with status 200.
// The data key is always an array, never null.
func (c *Collection[T]) Respond(w http.ResponseWriter) {
	result := make([]Map, 0, len(c.items))
	for _, item := range c.items {
		result = append(result, c.transform(item))
	}

	out := Map{"data": result}
	if c.meta != nil {
		out["meta"] = c.meta
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------- Helpers -------------------

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
