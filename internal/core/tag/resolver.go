// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"errors"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
)

/*
ResolveOrCreate returns the tag with the given name, inserting it first if it
does not exist yet.

The name is normalized before lookup. An existing tag is returned unchanged
even when tagType differs from its stored classification. A freshly inserted
tag is visible to later statements on the same tx.

Callers validate that name is not blank. A concurrent insert of the same name
that wins the unique constraint surfaces as CONFLICT.
*/
func ResolveOrCreate(context context.Context, tx catalog.Tx, name string, tagType *string) (*catalog.Tag, error) {
	normalized := catalog.NormalizeTagName(name)

	// 1. Existing tag wins
	existing, err := tx.TagByName(context, normalized)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	// 2. Create
	created := &catalog.Tag{Name: normalized, TagType: pointer.TrimmedOrNil(tagType)}
	if err := tx.InsertTag(context, created); err != nil {
		if errors.Is(err, dberr.ErrUniqueViolation) {
			return nil, apperr.ConflictKey("Tag", FieldName, normalized).WithCause(err)
		}
		return nil, err
	}
	return created, nil
}
