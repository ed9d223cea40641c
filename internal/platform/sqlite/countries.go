// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/schema"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

// # Country Reads

// ListCountries returns every country ordered by name.
func (q *queries) ListCountries(context context.Context) ([]catalog.CountrySummary, error) {
	c := schema.Country
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC, %s ASC`,
		c.ID, c.Name, c.Code, c.Region, c.Table, c.Name, c.ID)

	rows, err := q.db.QueryContext(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list countries")
	}
	defer rows.Close()

	countries := []catalog.CountrySummary{}
	for rows.Next() {
		var summary catalog.CountrySummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Code, &summary.Region); err != nil {
			return nil, dberr.Wrap(err, "scan country")
		}
		countries = append(countries, summary)
	}
	return countries, dberr.Wrap(rows.Err(), "list countries")
}

// CountryByCode loads the scalar fields of a country.
func (q *queries) CountryByCode(context context.Context, code string) (*catalog.Country, error) {
	c := schema.Country
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`, strings.Join(c.Columns(), ", "), c.Table, c.Code)

	country, err := scanCountry(q.db.QueryRowContext(context, query, catalog.NormalizeCode(code)))
	if err != nil {
		return nil, dberr.Wrap(err, "find country by code")
	}
	return country, nil
}

// BakedGoodsByCountry lists the baked goods owned by a country in insertion order.
func (q *queries) BakedGoodsByCountry(context context.Context, countryID int64) ([]catalog.BakedGood, error) {
	b := schema.BakedGood
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY %s ASC`,
		strings.Join(b.Columns(), ", "), b.Table, b.CountryID, b.ID)

	rows, err := q.db.QueryContext(context, query, countryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list baked goods")
	}
	defer rows.Close()

	goods := []catalog.BakedGood{}
	for rows.Next() {
		good, err := scanBakedGood(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan baked good")
		}
		goods = append(goods, *good)
	}
	return goods, dberr.Wrap(rows.Err(), "list baked goods")
}

// IngredientsByCountry lists the ingredients owned by a country in insertion order.
func (q *queries) IngredientsByCountry(context context.Context, countryID int64) ([]catalog.Ingredient, error) {
	i := schema.Ingredient
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY %s ASC`,
		strings.Join(i.Columns(), ", "), i.Table, i.CountryID, i.ID)

	rows, err := q.db.QueryContext(context, query, countryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list ingredients")
	}
	defer rows.Close()

	ingredients := []catalog.Ingredient{}
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan ingredient")
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, dberr.Wrap(rows.Err(), "list ingredients")
}

func (q *queries) BakedGoodByID(context context.Context, id int64) (*catalog.BakedGood, error) {
	b := schema.BakedGood
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`, strings.Join(b.Columns(), ", "), b.Table, b.ID)

	good, err := scanBakedGood(q.db.QueryRowContext(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find baked good")
	}
	return good, nil
}

func (q *queries) IngredientByID(context context.Context, id int64) (*catalog.Ingredient, error) {
	i := schema.Ingredient
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`, strings.Join(i.Columns(), ", "), i.Table, i.ID)

	ingredient, err := scanIngredient(q.db.QueryRowContext(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find ingredient")
	}
	return ingredient, nil
}

// StoriesByCountry lists the stories whose regions include the country, newest first.
func (q *queries) StoriesByCountry(context context.Context, countryID int64) ([]catalog.StoryRef, error) {
	s, sr := schema.Story, schema.StoryRegion
	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s
		FROM %s s
		JOIN %s sr ON sr.%s = s.%s
		WHERE sr.%s = ?
		ORDER BY s.%s DESC, s.%s ASC`,
		s.ID, s.Title, s.Slug,
		s.Table,
		sr.Table, sr.StoryID, s.ID,
		sr.CountryID,
		s.PublishedAt, s.ID,
	)

	rows, err := q.db.QueryContext(context, query, countryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list country stories")
	}
	defer rows.Close()

	refs := []catalog.StoryRef{}
	for rows.Next() {
		var ref catalog.StoryRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan story ref")
		}
		refs = append(refs, ref)
	}
	return refs, dberr.Wrap(rows.Err(), "list country stories")
}

// # Country Writes

func (q *queries) InsertCountry(context context.Context, country *catalog.Country) error {
	c := schema.Country
	extra, err := jsonArg(country.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?) RETURNING %s`,
		c.Table, c.Name, c.Code, c.Region, c.Overview, c.ExtraData, c.ID)

	id, err := q.insertReturningID(context, "insert country", query,
		country.Name, country.Code, country.Region, country.Overview, extra)
	if err != nil {
		return err
	}
	country.ID = id
	return nil
}

func (q *queries) UpdateCountry(context context.Context, country *catalog.Country) error {
	c := schema.Country
	extra, err := jsonArg(country.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ?, %s = ? WHERE %s = ?`,
		c.Table, c.Name, c.Code, c.Region, c.Overview, c.ExtraData, c.ID)

	return q.execOne(context, "update country", query,
		country.Name, country.Code, country.Region, country.Overview, extra, country.ID)
}

func (q *queries) DeleteCountry(context context.Context, id int64) error {
	c := schema.Country
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, c.Table, c.ID)
	return q.execOne(context, "delete country", query, id)
}

func (q *queries) DeleteBakedGoodsByCountry(context context.Context, countryID int64) (int64, error) {
	b := schema.BakedGood
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, b.Table, b.CountryID)
	return q.exec(context, "delete country baked goods", query, countryID)
}

func (q *queries) DeleteIngredientsByCountry(context context.Context, countryID int64) (int64, error) {
	i := schema.Ingredient
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, i.Table, i.CountryID)
	return q.exec(context, "delete country ingredients", query, countryID)
}

func (q *queries) DeleteRegionLinksByCountry(context context.Context, countryID int64) (int64, error) {
	sr := schema.StoryRegion
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, sr.Table, sr.CountryID)
	return q.exec(context, "delete country region links", query, countryID)
}

// # Baked Good & Ingredient Writes

func (q *queries) InsertBakedGood(context context.Context, good *catalog.BakedGood) error {
	b := schema.BakedGood
	extra, err := jsonArg(good.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?) RETURNING %s`,
		b.Table, b.CountryID, b.Name, b.Description, b.Category, b.ExtraData, b.ID)

	id, err := q.insertReturningID(context, "insert baked good", query,
		good.CountryID, good.Name, good.Description, good.Category, extra)
	if err != nil {
		return err
	}
	good.ID = id
	return nil
}

func (q *queries) UpdateBakedGood(context context.Context, good *catalog.BakedGood) error {
	b := schema.BakedGood
	extra, err := jsonArg(good.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ? WHERE %s = ?`,
		b.Table, b.Name, b.Description, b.Category, b.ExtraData, b.ID)

	return q.execOne(context, "update baked good", query,
		good.Name, good.Description, good.Category, extra, good.ID)
}

func (q *queries) DeleteBakedGood(context context.Context, id int64) error {
	b := schema.BakedGood
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, b.Table, b.ID)
	return q.execOne(context, "delete baked good", query, id)
}

func (q *queries) InsertIngredient(context context.Context, ingredient *catalog.Ingredient) error {
	i := schema.Ingredient
	extra, err := jsonArg(ingredient.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES (?, ?, ?, ?) RETURNING %s`,
		i.Table, i.CountryID, i.Name, i.Description, i.ExtraData, i.ID)

	id, err := q.insertReturningID(context, "insert ingredient", query,
		ingredient.CountryID, ingredient.Name, ingredient.Description, extra)
	if err != nil {
		return err
	}
	ingredient.ID = id
	return nil
}

func (q *queries) UpdateIngredient(context context.Context, ingredient *catalog.Ingredient) error {
	i := schema.Ingredient
	extra, err := jsonArg(ingredient.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = ?, %s = ?, %s = ? WHERE %s = ?`,
		i.Table, i.Name, i.Description, i.ExtraData, i.ID)

	return q.execOne(context, "update ingredient", query,
		ingredient.Name, ingredient.Description, extra, ingredient.ID)
}

func (q *queries) DeleteIngredient(context context.Context, id int64) error {
	i := schema.Ingredient
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, i.Table, i.ID)
	return q.execOne(context, "delete ingredient", query, id)
}
