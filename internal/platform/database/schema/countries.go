// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names every table and column of the catalog database.
//
// Both store backends build their SQL from these values so a column rename
// happens in exactly one place.
package schema

// CountryTable represents the 'countries' table
type CountryTable struct {
	Table     string
	ID        string
	Name      string
	Code      string
	Region    string
	Overview  string
	ExtraData string
}

// Country is the schema definition for countries
var Country = CountryTable{
	Table:     "countries",
	ID:        "id",
	Name:      "name",
	Code:      "code",
	Region:    "region",
	Overview:  "overview",
	ExtraData: "extra_data",
}

// Columns lists the selectable columns in scan order.
func (t CountryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Code, t.Region, t.Overview, t.ExtraData}
}
