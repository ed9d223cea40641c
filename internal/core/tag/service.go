// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/constants"
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

// ListTags returns every tag ordered by name, or only those of tagType when given.
func (service *Service) ListTags(context context.Context, tagType *string) ([]catalog.Tag, error) {
	return service.store.ListTags(context, pointer.TrimmedOrNil(tagType))
}

// CreateTag inserts a new tag. A name that already exists, in any case, is a CONFLICT.
func (service *Service) CreateTag(context context.Context, input CreateRequest) (*catalog.Tag, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, constants.MaxTagNameLength)
	validator.MaxLenPtr(FieldTagType, input.TagType, constants.MaxTagTypeLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &catalog.Tag{
		Name:    catalog.NormalizeTagName(input.Name),
		TagType: pointer.TrimmedOrNil(input.TagType),
	}

	err := service.store.InTx(context, func(tx catalog.Tx) error {
		if _, err := tx.TagByName(context, created.Name); err == nil {
			return apperr.ConflictKey("Tag", FieldName, created.Name)
		} else if !errors.Is(err, dberr.ErrNotFound) {
			return err
		}

		if err := tx.InsertTag(context, created); err != nil {
			if errors.Is(err, dberr.ErrUniqueViolation) {
				return apperr.ConflictKey("Tag", FieldName, created.Name).WithCause(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("tag_created", slog.String("name", created.Name), slog.Int64("tag_id", created.ID))
	return created, nil
}

/*
DeleteTag removes a tag by name.

The tag's story_tags rows go first; the stories themselves are untouched.
*/
func (service *Service) DeleteTag(context context.Context, name string) error {
	normalized := catalog.NormalizeTagName(name)

	var unlinked int64
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		existing, err := tx.TagByName(context, normalized)
		if err != nil {
			if errors.Is(err, dberr.ErrNotFound) {
				return apperr.NotFoundKey("Tag", FieldName, normalized)
			}
			return err
		}

		if unlinked, err = tx.DeleteTagLinksByTag(context, existing.ID); err != nil {
			return err
		}
		return tx.DeleteTag(context, existing.ID)
	})
	if err != nil {
		return err
	}

	service.logger.Warn("tag_deleted", slog.String("name", normalized), slog.Int64("unlinked_stories", unlinked))
	return nil
}
