// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package country manages countries and the baked goods and ingredients they own.

Countries are addressed by their code, compared and stored upper-cased.
Deleting a country removes what it owns and its story region links; the
stories themselves are kept.
*/
package country

// Field names reported in validation errors.
const (
	FieldName        = "name"
	FieldCode        = "code"
	FieldRegion      = "region"
	FieldDescription = "description"
	FieldCategory    = "category"
)

// CreateRequest is the body of POST /countries.
type CreateRequest struct {
	Name      string         `json:"name"`
	Code      string         `json:"code"`
	Region    *string        `json:"region"`
	Overview  *string        `json:"overview"`
	ExtraData map[string]any `json:"extra_data"`
}

// UpdateRequest is the body of PATCH /countries/{code}. Nil fields are left as stored.
type UpdateRequest struct {
	Name      *string         `json:"name"`
	Code      *string         `json:"code"`
	Region    *string         `json:"region"`
	Overview  *string         `json:"overview"`
	ExtraData *map[string]any `json:"extra_data"`
}

// BakedGoodRequest is the body of POST /countries/{code}/baked-goods.
type BakedGoodRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	ExtraData   map[string]any `json:"extra_data"`
}

// BakedGoodUpdate is the body of PATCH /countries/{code}/baked-goods/{id}.
type BakedGoodUpdate struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	ExtraData   *map[string]any `json:"extra_data"`
}

// IngredientRequest is the body of POST /countries/{code}/ingredients.
type IngredientRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	ExtraData   map[string]any `json:"extra_data"`
}

// IngredientUpdate is the body of PATCH /countries/{code}/ingredients/{id}.
type IngredientUpdate struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	ExtraData   *map[string]any `json:"extra_data"`
}
