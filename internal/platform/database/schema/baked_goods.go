// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BakedGoodTable represents the 'baked_goods' table
type BakedGoodTable struct {
	Table       string
	ID          string
	CountryID   string
	Name        string
	Description string
	Category    string
	ExtraData   string
}

// BakedGood is the schema definition for baked_goods
var BakedGood = BakedGoodTable{
	Table:       "baked_goods",
	ID:          "id",
	CountryID:   "country_id",
	Name:        "name",
	Description: "description",
	Category:    "category",
	ExtraData:   "extra_data",
}

func (t BakedGoodTable) Columns() []string {
	return []string{t.ID, t.CountryID, t.Name, t.Description, t.Category, t.ExtraData}
}
