// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/constants"
	"github.com/arjuju98/the-baking-atlas/internal/platform/ctxutil"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/validate"
	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
)

type Service struct {
	store  catalog.Store
	logger *slog.Logger
}

func NewService(store catalog.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// # Reads

// ListCountries returns country summaries ordered by name.
func (service *Service) ListCountries(context context.Context) ([]catalog.CountrySummary, error) {
	return service.store.ListCountries(context)
}

// GetCountry returns the country with its baked goods, ingredients and story refs.
func (service *Service) GetCountry(context context.Context, code string) (*catalog.Country, error) {
	return loadCountry(context, service.store, catalog.NormalizeCode(code))
}

// # Writes

// CreateCountry inserts a country. A code already in use, in any case, is a CONFLICT.
func (service *Service) CreateCountry(context context.Context, input CreateRequest) (*catalog.Country, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, constants.MaxNameLength)
	validator.CountryCode(FieldCode, input.Code)
	validator.MaxLenPtr(FieldRegion, input.Region, constants.MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &catalog.Country{
		Name:      strings.TrimSpace(input.Name),
		Code:      catalog.NormalizeCode(input.Code),
		Region:    pointer.TrimmedOrNil(input.Region),
		Overview:  pointer.TrimmedOrNil(input.Overview),
		ExtraData: input.ExtraData,
	}

	err := service.store.InTx(context, func(tx catalog.Tx) error {
		if err := ensureCodeFree(context, tx, created.Code, 0); err != nil {
			return err
		}
		if err := tx.InsertCountry(context, created); err != nil {
			return codeConflict(err, created.Code)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created.BakedGoods = []catalog.BakedGood{}
	created.Ingredients = []catalog.Ingredient{}
	created.Stories = []catalog.StoryRef{}

	service.loggerFor(context).Info("country_created", slog.String("code", created.Code), slog.Int64("country_id", created.ID))
	return created, nil
}

// UpdateCountry applies a partial update. Changing the code to one held by another country is a CONFLICT.
func (service *Service) UpdateCountry(context context.Context, code string, input UpdateRequest) (*catalog.Country, error) {
	validator := &validate.Validator{}
	validator.NotBlank(FieldName, input.Name).MaxLenPtr(FieldName, input.Name, constants.MaxNameLength)
	if input.Code != nil {
		validator.CountryCode(FieldCode, *input.Code)
	}
	validator.MaxLenPtr(FieldRegion, input.Region, constants.MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	code = catalog.NormalizeCode(code)

	var loaded *catalog.Country
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		current, err := tx.CountryByCode(context, code)
		if err != nil {
			return notFound(err, code)
		}

		if input.Name != nil {
			current.Name = strings.TrimSpace(*input.Name)
		}
		if input.Code != nil {
			renamed := catalog.NormalizeCode(*input.Code)
			if renamed != current.Code {
				if err := ensureCodeFree(context, tx, renamed, current.ID); err != nil {
					return err
				}
				current.Code = renamed
			}
		}
		if input.Region != nil {
			current.Region = pointer.TrimmedOrNil(input.Region)
		}
		if input.Overview != nil {
			current.Overview = pointer.TrimmedOrNil(input.Overview)
		}
		pointer.Apply(&current.ExtraData, input.ExtraData)

		if err := tx.UpdateCountry(context, current); err != nil {
			return codeConflict(err, current.Code)
		}

		loaded, err = loadCountry(context, tx, current.Code)
		return err
	})
	if err != nil {
		return nil, err
	}

	service.loggerFor(context).Info("country_updated", slog.String("code", loaded.Code), slog.Int64("country_id", loaded.ID))
	return loaded, nil
}

/*
DeleteCountry removes a country and everything that depends on it.

Order: baked goods, ingredients, story region links, then the country row.
Stories that referenced the country remain, possibly without any region.
*/
func (service *Service) DeleteCountry(context context.Context, code string) error {
	code = catalog.NormalizeCode(code)

	var goods, ingredients, links int64
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		current, err := tx.CountryByCode(context, code)
		if err != nil {
			return notFound(err, code)
		}

		if goods, err = tx.DeleteBakedGoodsByCountry(context, current.ID); err != nil {
			return err
		}
		if ingredients, err = tx.DeleteIngredientsByCountry(context, current.ID); err != nil {
			return err
		}
		if links, err = tx.DeleteRegionLinksByCountry(context, current.ID); err != nil {
			return err
		}
		return tx.DeleteCountry(context, current.ID)
	})
	if err != nil {
		return err
	}

	service.loggerFor(context).Warn("country_deleted",
		slog.String("code", code),
		slog.Int64("baked_goods", goods),
		slog.Int64("ingredients", ingredients),
		slog.Int64("story_links", links),
	)
	return nil
}

// # Helpers

func (service *Service) loggerFor(context context.Context) *slog.Logger {
	return ctxutil.LoggerOr(context, service.logger)
}

// ensureCodeFree fails with CONFLICT when code belongs to a country other than ownerID.
func ensureCodeFree(context context.Context, tx catalog.Tx, code string, ownerID int64) error {
	existing, err := tx.CountryByCode(context, code)
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return apperr.ConflictKey("Country", FieldCode, code)
	}
	return nil
}

func codeConflict(err error, code string) error {
	if errors.Is(err, dberr.ErrUniqueViolation) {
		return apperr.ConflictKey("Country", FieldCode, code).WithCause(err)
	}
	return err
}

func notFound(err error, code string) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFoundKey("Country", FieldCode, code)
	}
	return err
}

// loadCountry reads a country and its owned collections through reader.
func loadCountry(context context.Context, reader catalog.Reader, code string) (*catalog.Country, error) {
	loaded, err := reader.CountryByCode(context, code)
	if err != nil {
		return nil, notFound(err, code)
	}

	if loaded.BakedGoods, err = reader.BakedGoodsByCountry(context, loaded.ID); err != nil {
		return nil, err
	}
	if loaded.Ingredients, err = reader.IngredientsByCountry(context, loaded.ID); err != nil {
		return nil, err
	}
	if loaded.Stories, err = reader.StoriesByCountry(context, loaded.ID); err != nil {
		return nil, err
	}
	return loaded, nil
}
