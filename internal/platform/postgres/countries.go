// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/schema"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

// # Country Reads

func (q *queries) ListCountries(context context.Context) ([]catalog.CountrySummary, error) {
	c := schema.Country
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC, %s ASC`,
		c.ID, c.Name, c.Code, c.Region, c.Table, c.Name, c.ID)

	rows, err := q.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list countries")
	}
	return collect(rows, "list countries", scanCountrySummary)
}

func (q *queries) CountryByCode(context context.Context, code string) (*catalog.Country, error) {
	c := schema.Country
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(c.Columns(), ", "), c.Table, c.Code)

	country, err := scanCountry(q.db.QueryRow(context, query, catalog.NormalizeCode(code)))
	if err != nil {
		return nil, dberr.Wrap(err, "find country by code")
	}
	return country, nil
}

func (q *queries) BakedGoodsByCountry(context context.Context, countryID int64) ([]catalog.BakedGood, error) {
	b := schema.BakedGood
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(b.Columns(), ", "), b.Table, b.CountryID, b.ID)

	rows, err := q.db.Query(context, query, countryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list baked goods")
	}
	return collect(rows, "list baked goods", scanBakedGood)
}

func (q *queries) IngredientsByCountry(context context.Context, countryID int64) ([]catalog.Ingredient, error) {
	i := schema.Ingredient
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(i.Columns(), ", "), i.Table, i.CountryID, i.ID)

	rows, err := q.db.Query(context, query, countryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list ingredients")
	}
	return collect(rows, "list ingredients", scanIngredient)
}

func (q *queries) BakedGoodByID(context context.Context, id int64) (*catalog.BakedGood, error) {
	b := schema.BakedGood
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(b.Columns(), ", "), b.Table, b.ID)

	good, err := scanBakedGood(q.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find baked good")
	}
	return &good, nil
}

func (q *queries) IngredientByID(context context.Context, id int64) (*catalog.Ingredient, error) {
	i := schema.Ingredient
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(i.Columns(), ", "), i.Table, i.ID)

	ingredient, err := scanIngredient(q.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find ingredient")
	}
	return &ingredient, nil
}

func (q *queries) StoriesByCountry(context context.Context, countryID int64) ([]catalog.StoryRef, error) {
	s, sr := schema.Story, schema.StoryRegion
	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s
		FROM %s s
		JOIN %s sr ON sr.%s = s.%s
		WHERE sr.%s = $1
		ORDER BY s.%s DESC, s.%s ASC`,
		s.ID, s.Title, s.Slug,
		s.Table,
		sr.Table, sr.StoryID, s.ID,
		sr.CountryID,
		s.PublishedAt, s.ID,
	)

	rows, err := q.db.Query(context, query, countryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list country stories")
	}
	return collect(rows, "list country stories", scanStoryRef)
}

// # Country Writes

func (q *queries) InsertCountry(context context.Context, country *catalog.Country) error {
	c := schema.Country
	extra, err := jsonArg(country.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s`,
		c.Table, c.Name, c.Code, c.Region, c.Overview, c.ExtraData, c.ID)

	country.ID, err = q.insertReturningID(context, "insert country", query,
		country.Name, country.Code, country.Region, country.Overview, extra)
	return err
}

func (q *queries) UpdateCountry(context context.Context, country *catalog.Country) error {
	c := schema.Country
	extra, err := jsonArg(country.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $6`,
		c.Table, c.Name, c.Code, c.Region, c.Overview, c.ExtraData, c.ID)

	return q.execOne(context, "update country", query,
		country.Name, country.Code, country.Region, country.Overview, extra, country.ID)
}

func (q *queries) DeleteCountry(context context.Context, id int64) error {
	c := schema.Country
	return q.execOne(context, "delete country",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.ID), id)
}

func (q *queries) DeleteBakedGoodsByCountry(context context.Context, countryID int64) (int64, error) {
	b := schema.BakedGood
	return q.exec(context, "delete country baked goods",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, b.Table, b.CountryID), countryID)
}

func (q *queries) DeleteIngredientsByCountry(context context.Context, countryID int64) (int64, error) {
	i := schema.Ingredient
	return q.exec(context, "delete country ingredients",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, i.Table, i.CountryID), countryID)
}

func (q *queries) DeleteRegionLinksByCountry(context context.Context, countryID int64) (int64, error) {
	sr := schema.StoryRegion
	return q.exec(context, "delete country region links",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, sr.Table, sr.CountryID), countryID)
}

// # Baked Good & Ingredient Writes

func (q *queries) InsertBakedGood(context context.Context, good *catalog.BakedGood) error {
	b := schema.BakedGood
	extra, err := jsonArg(good.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s`,
		b.Table, b.CountryID, b.Name, b.Description, b.Category, b.ExtraData, b.ID)

	good.ID, err = q.insertReturningID(context, "insert baked good", query,
		good.CountryID, good.Name, good.Description, good.Category, extra)
	return err
}

func (q *queries) UpdateBakedGood(context context.Context, good *catalog.BakedGood) error {
	b := schema.BakedGood
	extra, err := jsonArg(good.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4 WHERE %s = $5`,
		b.Table, b.Name, b.Description, b.Category, b.ExtraData, b.ID)

	return q.execOne(context, "update baked good", query,
		good.Name, good.Description, good.Category, extra, good.ID)
}

func (q *queries) DeleteBakedGood(context context.Context, id int64) error {
	b := schema.BakedGood
	return q.execOne(context, "delete baked good",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, b.Table, b.ID), id)
}

func (q *queries) InsertIngredient(context context.Context, ingredient *catalog.Ingredient) error {
	i := schema.Ingredient
	extra, err := jsonArg(ingredient.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		i.Table, i.CountryID, i.Name, i.Description, i.ExtraData, i.ID)

	ingredient.ID, err = q.insertReturningID(context, "insert ingredient", query,
		ingredient.CountryID, ingredient.Name, ingredient.Description, extra)
	return err
}

func (q *queries) UpdateIngredient(context context.Context, ingredient *catalog.Ingredient) error {
	i := schema.Ingredient
	extra, err := jsonArg(ingredient.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4`,
		i.Table, i.Name, i.Description, i.ExtraData, i.ID)

	return q.execOne(context, "update ingredient", query,
		ingredient.Name, ingredient.Description, extra, ingredient.ID)
}

func (q *queries) DeleteIngredient(context context.Context, id int64) error {
	i := schema.Ingredient
	return q.execOne(context, "delete ingredient",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, i.Table, i.ID), id)
}
