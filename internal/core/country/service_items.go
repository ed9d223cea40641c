// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/constants"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/validate"
	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
)

// Baked goods and ingredients are only reachable through the country that owns
// them: an id that exists under another country is reported as not found.

// # Baked Goods

func (service *Service) AddBakedGood(context context.Context, code string, input BakedGoodRequest) (*catalog.BakedGood, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, constants.MaxNameLength)
	validator.MaxLenPtr(FieldCategory, input.Category, constants.MaxCategoryLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	code = catalog.NormalizeCode(code)
	good := &catalog.BakedGood{
		Name:        strings.TrimSpace(input.Name),
		Description: pointer.TrimmedOrNil(input.Description),
		Category:    pointer.TrimmedOrNil(input.Category),
		ExtraData:   input.ExtraData,
	}

	err := service.store.InTx(context, func(tx catalog.Tx) error {
		owner, err := tx.CountryByCode(context, code)
		if err != nil {
			return notFound(err, code)
		}
		good.CountryID = owner.ID
		return tx.InsertBakedGood(context, good)
	})
	if err != nil {
		return nil, err
	}

	service.loggerFor(context).Info("baked_good_created", slog.String("code", code), slog.Int64("baked_good_id", good.ID))
	return good, nil
}

func (service *Service) UpdateBakedGood(context context.Context, code string, id int64, input BakedGoodUpdate) (*catalog.BakedGood, error) {
	validator := &validate.Validator{}
	validator.NotBlank(FieldName, input.Name).MaxLenPtr(FieldName, input.Name, constants.MaxNameLength)
	validator.MaxLenPtr(FieldCategory, input.Category, constants.MaxCategoryLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var good *catalog.BakedGood
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		var err error
		if good, err = ownedBakedGood(context, tx, catalog.NormalizeCode(code), id); err != nil {
			return err
		}

		if input.Name != nil {
			good.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			good.Description = pointer.TrimmedOrNil(input.Description)
		}
		if input.Category != nil {
			good.Category = pointer.TrimmedOrNil(input.Category)
		}
		pointer.Apply(&good.ExtraData, input.ExtraData)

		return tx.UpdateBakedGood(context, good)
	})
	if err != nil {
		return nil, err
	}

	service.loggerFor(context).Info("baked_good_updated", slog.Int64("baked_good_id", id))
	return good, nil
}

func (service *Service) DeleteBakedGood(context context.Context, code string, id int64) error {
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		if _, err := ownedBakedGood(context, tx, catalog.NormalizeCode(code), id); err != nil {
			return err
		}
		return tx.DeleteBakedGood(context, id)
	})
	if err != nil {
		return err
	}

	service.loggerFor(context).Warn("baked_good_deleted", slog.Int64("baked_good_id", id))
	return nil
}

// # Ingredients

func (service *Service) AddIngredient(context context.Context, code string, input IngredientRequest) (*catalog.Ingredient, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, constants.MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	code = catalog.NormalizeCode(code)
	ingredient := &catalog.Ingredient{
		Name:        strings.TrimSpace(input.Name),
		Description: pointer.TrimmedOrNil(input.Description),
		ExtraData:   input.ExtraData,
	}

	err := service.store.InTx(context, func(tx catalog.Tx) error {
		owner, err := tx.CountryByCode(context, code)
		if err != nil {
			return notFound(err, code)
		}
		ingredient.CountryID = owner.ID
		return tx.InsertIngredient(context, ingredient)
	})
	if err != nil {
		return nil, err
	}

	service.loggerFor(context).Info("ingredient_created", slog.String("code", code), slog.Int64("ingredient_id", ingredient.ID))
	return ingredient, nil
}

func (service *Service) UpdateIngredient(context context.Context, code string, id int64, input IngredientUpdate) (*catalog.Ingredient, error) {
	validator := &validate.Validator{}
	validator.NotBlank(FieldName, input.Name).MaxLenPtr(FieldName, input.Name, constants.MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var ingredient *catalog.Ingredient
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		var err error
		if ingredient, err = ownedIngredient(context, tx, catalog.NormalizeCode(code), id); err != nil {
			return err
		}

		if input.Name != nil {
			ingredient.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			ingredient.Description = pointer.TrimmedOrNil(input.Description)
		}
		pointer.Apply(&ingredient.ExtraData, input.ExtraData)

		return tx.UpdateIngredient(context, ingredient)
	})
	if err != nil {
		return nil, err
	}

	service.loggerFor(context).Info("ingredient_updated", slog.Int64("ingredient_id", id))
	return ingredient, nil
}

func (service *Service) DeleteIngredient(context context.Context, code string, id int64) error {
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		if _, err := ownedIngredient(context, tx, catalog.NormalizeCode(code), id); err != nil {
			return err
		}
		return tx.DeleteIngredient(context, id)
	})
	if err != nil {
		return err
	}

	service.loggerFor(context).Warn("ingredient_deleted", slog.Int64("ingredient_id", id))
	return nil
}

// # Ownership

func ownedBakedGood(context context.Context, tx catalog.Tx, code string, id int64) (*catalog.BakedGood, error) {
	owner, err := tx.CountryByCode(context, code)
	if err != nil {
		return nil, notFound(err, code)
	}

	good, err := tx.BakedGoodByID(context, id)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}
	if err != nil || good.CountryID != owner.ID {
		return nil, apperr.NotFoundKey("BakedGood", "id", strconv.FormatInt(id, 10))
	}
	return good, nil
}

func ownedIngredient(context context.Context, tx catalog.Tx, code string, id int64) (*catalog.Ingredient, error) {
	owner, err := tx.CountryByCode(context, code)
	if err != nil {
		return nil, notFound(err, code)
	}

	ingredient, err := tx.IngredientByID(context, id)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}
	if err != nil || ingredient.CountryID != owner.ID {
		return nil, apperr.NotFoundKey("Ingredient", "id", strconv.FormatInt(id, 10))
	}
	return ingredient, nil
}
