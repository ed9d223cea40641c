// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// IngredientTable represents the 'ingredients' table
type IngredientTable struct {
	Table       string
	ID          string
	CountryID   string
	Name        string
	Description string
	ExtraData   string
}

// Ingredient is the schema definition for ingredients
var Ingredient = IngredientTable{
	Table:       "ingredients",
	ID:          "id",
	CountryID:   "country_id",
	Name:        "name",
	Description: "description",
	ExtraData:   "extra_data",
}

func (t IngredientTable) Columns() []string {
	return []string{t.ID, t.CountryID, t.Name, t.Description, t.ExtraData}
}
