// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/constants"
	"github.com/arjuju98/the-baking-atlas/internal/platform/ctxutil"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/validate"
	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
	"github.com/arjuju98/the-baking-atlas/pkg/slug"
)

type Service struct {
	store  catalog.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store catalog.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for published_at and updated_at.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// timestamp is the current time at the precision both backends store.
func (service *Service) timestamp() time.Time {
	return service.now().UTC().Truncate(time.Microsecond)
}

// # Reads

// ListStories returns the summaries matching every given filter, newest first.
func (service *Service) ListStories(context context.Context, filter catalog.StoryFilter) ([]catalog.StorySummary, error) {
	stories, err := service.store.ListStories(context, filter.Normalized())
	if err != nil {
		return nil, err
	}
	if err := hydrateSummaries(context, service.store, stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// GetStory returns the full story with its regions and tags.
func (service *Service) GetStory(context context.Context, storySlug string) (*catalog.Story, error) {
	return loadStory(context, service.store, strings.TrimSpace(storySlug))
}

// # Writes

/*
CreateStory inserts a story and its associations in one transaction.

A taken slug is a CONFLICT and an unknown region code is INVALID_REFERENCE;
in both cases nothing is stored.
*/
func (service *Service) CreateStory(context context.Context, input CreateRequest) (*catalog.Story, error) {
	storySlug := strings.TrimSpace(pointer.Val(input.Slug))
	if storySlug == "" {
		storySlug = slug.From(input.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, constants.MaxTitleLength)
	validator.Required(FieldBody, input.Body)
	if input.Slug != nil || input.Title != "" {
		validator.Slug(FieldSlug, storySlug).MaxLen(FieldSlug, storySlug, constants.MaxSlugLength)
	}
	validateOptional(validator, input.Summary, input.TimeContext, input.AuthorName)
	validator.EachNotBlank(FieldRegionCodes, input.RegionCodes)
	for _, code := range input.RegionCodes {
		if strings.TrimSpace(code) != "" {
			validator.CountryCode(FieldRegionCodes, code)
		}
	}
	validator.EachNotBlank(FieldTagNames, input.TagNames)
	for _, name := range input.TagNames {
		validator.MaxLen(FieldTagNames, strings.TrimSpace(name), constants.MaxTagNameLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.timestamp()
	created := &catalog.Story{
		Title:       strings.TrimSpace(input.Title),
		Slug:        storySlug,
		Summary:     pointer.TrimmedOrNil(input.Summary),
		Body:        input.Body,
		TimeContext: pointer.TrimmedOrNil(input.TimeContext),
		AuthorName:  pointer.TrimmedOrNil(input.AuthorName),
		Sources:     pointer.TrimmedOrNil(input.Sources),
		PublishedAt: now,
		UpdatedAt:   now,
		ExtraData:   input.ExtraData,
	}

	var loaded *catalog.Story
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		if err := ensureSlugFree(context, tx, storySlug, 0); err != nil {
			return err
		}
		if err := tx.InsertStory(context, created); err != nil {
			return slugConflict(err, storySlug)
		}
		if err := SetRegions(context, tx, created.ID, input.RegionCodes); err != nil {
			return err
		}
		if err := SetTags(context, tx, created.ID, input.TagNames); err != nil {
			return err
		}

		var err error
		loaded, err = loadStory(context, tx, storySlug)
		return err
	})
	if err != nil {
		return nil, err
	}

	service.loggerFor(context).Info("story_created",
		slog.String("slug", loaded.Slug),
		slog.Int("regions", len(loaded.Regions)),
		slog.Int("tags", len(loaded.Tags)),
	)
	return loaded, nil
}

/*
UpdateStory applies a partial update to the story at storySlug.

Only provided fields change. A provided association list replaces the stored
links. Renaming to a slug held by another story is a CONFLICT; renaming to the
current slug is a no-op. updated_at is refreshed on every successful call.
*/
func (service *Service) UpdateStory(context context.Context, storySlug string, input UpdateRequest) (*catalog.Story, error) {
	validator := &validate.Validator{}
	validator.NotBlank(FieldTitle, input.Title).MaxLenPtr(FieldTitle, input.Title, constants.MaxTitleLength)
	validator.NotBlank(FieldBody, input.Body)
	if input.Slug != nil {
		trimmed := strings.TrimSpace(*input.Slug)
		validator.Slug(FieldSlug, trimmed).MaxLen(FieldSlug, trimmed, constants.MaxSlugLength)
	}
	validateOptional(validator, input.Summary, input.TimeContext, input.AuthorName)
	if input.RegionCodes != nil {
		validator.EachNotBlank(FieldRegionCodes, *input.RegionCodes)
		for _, code := range *input.RegionCodes {
			if strings.TrimSpace(code) != "" {
				validator.CountryCode(FieldRegionCodes, code)
			}
		}
	}
	if input.TagNames != nil {
		validator.EachNotBlank(FieldTagNames, *input.TagNames)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	storySlug = strings.TrimSpace(storySlug)

	var loaded *catalog.Story
	err := service.store.InTx(context, func(tx catalog.Tx) error {
		current, err := tx.StoryBySlug(context, storySlug)
		if err != nil {
			return notFound(err, storySlug)
		}

		// 1. Scalars
		if input.Title != nil {
			current.Title = strings.TrimSpace(*input.Title)
		}
		if input.Slug != nil {
			renamed := strings.TrimSpace(*input.Slug)
			if renamed != current.Slug {
				if err := ensureSlugFree(context, tx, renamed, current.ID); err != nil {
					return err
				}
				current.Slug = renamed
			}
		}
		pointer.Apply(&current.Body, input.Body)
		pointer.Apply(&current.ExtraData, input.ExtraData)
		if input.Summary != nil {
			current.Summary = pointer.TrimmedOrNil(input.Summary)
		}
		if input.TimeContext != nil {
			current.TimeContext = pointer.TrimmedOrNil(input.TimeContext)
		}
		if input.AuthorName != nil {
			current.AuthorName = pointer.TrimmedOrNil(input.AuthorName)
		}
		if input.Sources != nil {
			current.Sources = pointer.TrimmedOrNil(input.Sources)
		}
		current.UpdatedAt = service.timestamp()

		if err := tx.UpdateStory(context, current); err != nil {
			return slugConflict(err, current.Slug)
		}

		// 2. Associations
		if input.RegionCodes != nil {
			if err := SetRegions(context, tx, current.ID, *input.RegionCodes); err != nil {
				return err
			}
		}
		if input.TagNames != nil {
			if err := SetTags(context, tx, current.ID, *input.TagNames); err != nil {
				return err
			}
		}

		loaded, err = loadStory(context, tx, current.Slug)
		return err
	})
	if err != nil {
		return nil, err
	}

	service.loggerFor(context).Info("story_updated", slog.String("slug", loaded.Slug), slog.Int64("story_id", loaded.ID))
	return loaded, nil
}

// DeleteStory removes the story and its region and tag links. Countries and tags remain.
func (service *Service) DeleteStory(context context.Context, storySlug string) error {
	storySlug = strings.TrimSpace(storySlug)

	err := service.store.InTx(context, func(tx catalog.Tx) error {
		current, err := tx.StoryBySlug(context, storySlug)
		if err != nil {
			return notFound(err, storySlug)
		}
		if _, err := tx.DeleteRegionLinksByStory(context, current.ID); err != nil {
			return err
		}
		if _, err := tx.DeleteTagLinksByStory(context, current.ID); err != nil {
			return err
		}
		return tx.DeleteStory(context, current.ID)
	})
	if err != nil {
		return err
	}

	service.loggerFor(context).Warn("story_deleted", slog.String("slug", storySlug))
	return nil
}

// # Helpers

func (service *Service) loggerFor(context context.Context) *slog.Logger {
	return ctxutil.LoggerOr(context, service.logger)
}

func validateOptional(validator *validate.Validator, summary, timeContext, authorName *string) {
	validator.MaxLenPtr(FieldSummary, summary, constants.MaxSummaryLength)
	validator.MaxLenPtr(FieldAuthorName, authorName, constants.MaxAuthorLength)
	if trimmed := pointer.TrimmedOrNil(timeContext); trimmed != nil {
		validator.OneOf(FieldTimeContext, *trimmed, constants.TimeContexts...)
	}
}

// ensureSlugFree fails with CONFLICT when slug belongs to a story other than ownerID.
func ensureSlugFree(context context.Context, tx catalog.Tx, storySlug string, ownerID int64) error {
	existing, err := tx.StoryBySlug(context, storySlug)
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return apperr.ConflictKey("Story", FieldSlug, storySlug)
	}
	return nil
}

func slugConflict(err error, storySlug string) error {
	if errors.Is(err, dberr.ErrUniqueViolation) {
		return apperr.ConflictKey("Story", FieldSlug, storySlug).WithCause(err)
	}
	return err
}

func notFound(err error, storySlug string) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFoundKey("Story", FieldSlug, storySlug)
	}
	return err
}

// loadStory reads a story and its associations through reader (the store or a tx).
func loadStory(context context.Context, reader catalog.Reader, storySlug string) (*catalog.Story, error) {
	loaded, err := reader.StoryBySlug(context, storySlug)
	if err != nil {
		return nil, notFound(err, storySlug)
	}

	ids := []int64{loaded.ID}
	regions, err := reader.RegionsByStory(context, ids)
	if err != nil {
		return nil, err
	}
	tags, err := reader.TagsByStory(context, ids)
	if err != nil {
		return nil, err
	}

	loaded.Regions = orEmpty(regions[loaded.ID])
	loaded.Tags = orEmpty(tags[loaded.ID])
	return loaded, nil
}

// hydrateSummaries fills Regions and Tags for every summary with two batch queries.
func hydrateSummaries(context context.Context, reader catalog.Reader, stories []catalog.StorySummary) error {
	if len(stories) == 0 {
		return nil
	}

	ids := make([]int64, len(stories))
	for i := range stories {
		ids[i] = stories[i].ID
	}

	regions, err := reader.RegionsByStory(context, ids)
	if err != nil {
		return err
	}
	tags, err := reader.TagsByStory(context, ids)
	if err != nil {
		return err
	}

	for i := range stories {
		stories[i].Regions = orEmpty(regions[stories[i].ID])
		stories[i].Tags = orEmpty(tags[stories[i].ID])
	}
	return nil
}

// orEmpty keeps JSON output as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
