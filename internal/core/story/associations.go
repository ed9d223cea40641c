// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"errors"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/core/tag"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
	"github.com/arjuju98/the-baking-atlas/pkg/slice"
)

/*
SetRegions replaces the story's region links with the countries named by codes.

Codes are normalized and deduplicated, then every one is resolved before any
link row is touched. The first unknown code returns INVALID_REFERENCE; the
caller's transaction then rolls back, leaving the previous links in place.
*/
func SetRegions(context context.Context, tx catalog.Tx, storyID int64, codes []string) error {

	// 1. Resolve the desired set
	desired := make([]int64, 0, len(codes))
	for _, code := range slice.Unique(slice.Map(codes, catalog.NormalizeCode)) {
		country, err := tx.CountryByCode(context, code)
		if err != nil {
			if errors.Is(err, dberr.ErrNotFound) {
				return apperr.InvalidReference("Country", "code", code)
			}
			return err
		}
		desired = append(desired, country.ID)
	}

	// 2. Diff against the stored links
	current, err := tx.RegionsByStory(context, []int64{storyID})
	if err != nil {
		return err
	}
	currentIDs := slice.Map(current[storyID], func(ref catalog.CountryRef) int64 { return ref.ID })

	// 3. Apply
	if removed := slice.Difference(currentIDs, desired); len(removed) > 0 {
		if err := tx.UnlinkRegions(context, storyID, removed); err != nil {
			return err
		}
	}
	if added := slice.Difference(desired, currentIDs); len(added) > 0 {
		return tx.LinkRegions(context, storyID, added)
	}
	return nil
}

/*
SetTags replaces the story's tag links with the tags named by names.

Each normalized name goes through [tag.ResolveOrCreate], so unknown names
become new untyped tags rather than errors.
*/
func SetTags(context context.Context, tx catalog.Tx, storyID int64, names []string) error {
	desired := make([]int64, 0, len(names))
	for _, name := range slice.Unique(slice.Map(names, catalog.NormalizeTagName)) {
		resolved, err := tag.ResolveOrCreate(context, tx, name, nil)
		if err != nil {
			return err
		}
		desired = append(desired, resolved.ID)
	}

	current, err := tx.TagsByStory(context, []int64{storyID})
	if err != nil {
		return err
	}
	currentIDs := slice.Map(current[storyID], func(t catalog.Tag) int64 { return t.ID })

	if removed := slice.Difference(currentIDs, desired); len(removed) > 0 {
		if err := tx.UnlinkTags(context, storyID, removed); err != nil {
			return err
		}
	}
	if added := slice.Difference(desired, currentIDs); len(added) > 0 {
		return tx.LinkTags(context, storyID, added)
	}
	return nil
}
