// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the entities of the Baking Atlas and the storage
contract every backend implements.

Domain model:

  - Country: owns BakedGood and Ingredient rows, keyed externally by code.
  - Story: editorial content keyed by slug, linked to countries (regions) and tags.
  - Tag: shared classifier keyed by its lower-case name.

The country, story and tag packages hold the business rules; this package only
describes the data and how to reach it.
*/
package catalog

import (
	"strings"
	"time"
)

// # Countries

// Country is a catalog country with its owned collections populated on reads
// that need them.
type Country struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Code      string         `json:"code"`
	Region    *string        `json:"region"`
	Overview  *string        `json:"overview"`
	ExtraData map[string]any `json:"extra_data"`

	// Hydrated collections.
	BakedGoods  []BakedGood  `json:"baked_goods"`
	Ingredients []Ingredient `json:"ingredients"`
	Stories     []StoryRef   `json:"stories"`
}

// CountrySummary is the list representation of a country.
type CountrySummary struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Code   string  `json:"code"`
	Region *string `json:"region"`
}

// CountryRef is how a country appears inside a story (a region).
type CountryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// BakedGood belongs to exactly one country.
type BakedGood struct {
	ID          int64          `json:"id"`
	CountryID   int64          `json:"country_id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	ExtraData   map[string]any `json:"extra_data"`
}

// Ingredient belongs to exactly one country.
type Ingredient struct {
	ID          int64          `json:"id"`
	CountryID   int64          `json:"country_id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	ExtraData   map[string]any `json:"extra_data"`
}

// # Stories

// Story is the full editorial record, including its associations.
type Story struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Summary     *string        `json:"summary"`
	Body        string         `json:"body"`
	TimeContext *string        `json:"time_context"`
	AuthorName  *string        `json:"author_name"`
	Sources     *string        `json:"sources"`
	PublishedAt time.Time      `json:"published_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ExtraData   map[string]any `json:"extra_data"`

	Regions []CountryRef `json:"regions"`
	Tags    []Tag        `json:"tags"`
}

// StorySummary is the list representation of a story: no body, but with its
// regions and tags so a listing can be rendered without further requests.
type StorySummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     *string   `json:"summary"`
	TimeContext *string   `json:"time_context"`
	AuthorName  *string   `json:"author_name"`
	PublishedAt time.Time `json:"published_at"`

	Regions []CountryRef `json:"regions"`
	Tags    []Tag        `json:"tags"`
}

// StoryRef is how a story appears inside a country.
type StoryRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// # Tags

// Tag is a shared, lower-case classifier. TagType is optional.
type Tag struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	TagType *string `json:"tag_type"`
}

// # Normalization

// NormalizeCode returns the canonical form of a country code (trimmed, upper case).
//
// Codes are compared and stored only in this form, so "jp" and "JP" are the same key.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeTagName returns the canonical form of a tag name (trimmed, lower case).
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
