// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// StoryFilter narrows a story listing. Nil fields add no constraint; set fields
// are ANDed together.
type StoryFilter struct {
	// Region is a country code; matched after [NormalizeCode].
	Region *string
	// Tag is a tag name; matched after [NormalizeTagName].
	Tag *string
	// TimeContext is compared by equality.
	TimeContext *string
}

// Normalized returns a copy with each present key in canonical form. Blank
// values are dropped so they behave as absent.
func (f StoryFilter) Normalized() StoryFilter {
	var out StoryFilter
	if f.Region != nil {
		if code := NormalizeCode(*f.Region); code != "" {
			out.Region = &code
		}
	}
	if f.Tag != nil {
		if name := NormalizeTagName(*f.Tag); name != "" {
			out.Tag = &name
		}
	}
	if f.TimeContext != nil && *f.TimeContext != "" {
		value := *f.TimeContext
		out.TimeContext = &value
	}
	return out
}

// IsEmpty reports whether the filter constrains nothing.
func (f StoryFilter) IsEmpty() bool {
	return f.Region == nil && f.Tag == nil && f.TimeContext == nil
}

/*
Reader exposes keyed reads over the catalog.

Lookups by key (code, slug, name, id) return an error wrapping dberr.ErrNotFound
when no row matches. Listings return an empty, non-nil slice for zero rows.
*/
type Reader interface {
	// # Countries

	ListCountries(context context.Context) ([]CountrySummary, error)
	CountryByCode(context context.Context, code string) (*Country, error)
	BakedGoodsByCountry(context context.Context, countryID int64) ([]BakedGood, error)
	IngredientsByCountry(context context.Context, countryID int64) ([]Ingredient, error)
	BakedGoodByID(context context.Context, id int64) (*BakedGood, error)
	IngredientByID(context context.Context, id int64) (*Ingredient, error)

	// StoriesByCountry lists stories linked to the country, newest first.
	StoriesByCountry(context context.Context, countryID int64) ([]StoryRef, error)

	// # Stories

	// ListStories returns summaries matching the filter (already normalized),
	// ordered by published_at descending then id ascending. Regions and Tags
	// are left empty; see RegionsByStory and TagsByStory.
	ListStories(context context.Context, filter StoryFilter) ([]StorySummary, error)
	StoryBySlug(context context.Context, slug string) (*Story, error)

	// RegionsByStory returns the linked countries for each story id, ordered by code.
	RegionsByStory(context context.Context, storyIDs []int64) (map[int64][]CountryRef, error)
	// TagsByStory returns the linked tags for each story id, ordered by name.
	TagsByStory(context context.Context, storyIDs []int64) (map[int64][]Tag, error)

	// # Tags

	// ListTags returns tags ordered by name, optionally restricted to one tag_type.
	ListTags(context context.Context, tagType *string) ([]Tag, error)
	TagByName(context context.Context, name string) (*Tag, error)
}

/*
Writer exposes mutations over the catalog.

Inserts assign the generated ID back onto the entity. Writes that collide with
a UNIQUE constraint return an error wrapping dberr.ErrUniqueViolation. Updates
and single-row deletes that match nothing wrap dberr.ErrNotFound; the
"...By..." bulk deletes report how many rows they removed instead.
*/
type Writer interface {
	// # Countries

	InsertCountry(context context.Context, country *Country) error
	UpdateCountry(context context.Context, country *Country) error
	DeleteCountry(context context.Context, id int64) error
	DeleteBakedGoodsByCountry(context context.Context, countryID int64) (int64, error)
	DeleteIngredientsByCountry(context context.Context, countryID int64) (int64, error)
	DeleteRegionLinksByCountry(context context.Context, countryID int64) (int64, error)

	InsertBakedGood(context context.Context, good *BakedGood) error
	UpdateBakedGood(context context.Context, good *BakedGood) error
	DeleteBakedGood(context context.Context, id int64) error

	InsertIngredient(context context.Context, ingredient *Ingredient) error
	UpdateIngredient(context context.Context, ingredient *Ingredient) error
	DeleteIngredient(context context.Context, id int64) error

	// # Stories

	InsertStory(context context.Context, story *Story) error
	UpdateStory(context context.Context, story *Story) error
	DeleteStory(context context.Context, id int64) error

	// LinkRegions inserts (story, country) pairs; existing pairs are left as is.
	LinkRegions(context context.Context, storyID int64, countryIDs []int64) error
	UnlinkRegions(context context.Context, storyID int64, countryIDs []int64) error
	DeleteRegionLinksByStory(context context.Context, storyID int64) (int64, error)

	// LinkTags inserts (story, tag) pairs; existing pairs are left as is.
	LinkTags(context context.Context, storyID int64, tagIDs []int64) error
	UnlinkTags(context context.Context, storyID int64, tagIDs []int64) error
	DeleteTagLinksByStory(context context.Context, storyID int64) (int64, error)
	DeleteTagLinksByTag(context context.Context, tagID int64) (int64, error)

	// # Tags

	InsertTag(context context.Context, tag *Tag) error
	DeleteTag(context context.Context, id int64) error
}

// Tx is a unit of work: reads inside it observe its own uncommitted writes.
type Tx interface {
	Reader
	Writer
}

/*
Store is the Entity Store.

Reads outside a transaction go straight to the database. Every mutation runs
inside InTx: fn's writes are committed when it returns nil and rolled back
otherwise (including on panic), and fn's error is returned unchanged.
*/
type Store interface {
	Reader
	InTx(context context.Context, fn func(tx Tx) error) error
	Ping(context context.Context) error
	Close() error
}
