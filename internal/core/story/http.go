// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	requestutil "github.com/arjuju98/the-baking-atlas/internal/platform/request"
	"github.com/arjuju98/the-baking-atlas/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listStories)
	router.Post("/", handler.createStory)
	router.Get("/{slug}", handler.getStory)
	router.Patch("/{slug}", handler.updateStory)
	router.Delete("/{slug}", handler.deleteStory)
}

func (handler *Handler) listStories(writer http.ResponseWriter, request *http.Request) {
	filter := catalog.StoryFilter{
		Region:      requestutil.Query(request, "region"),
		Tag:         requestutil.Query(request, "tag"),
		TimeContext: requestutil.Query(request, "time_context"),
	}

	stories, err := handler.service.ListStories(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stories)
}

func (handler *Handler) getStory(writer http.ResponseWriter, request *http.Request) {
	story, err := handler.service.GetStory(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, story)
}

func (handler *Handler) createStory(writer http.ResponseWriter, request *http.Request) {
	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	story, err := handler.service.CreateStory(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, story)
}

func (handler *Handler) updateStory(writer http.ResponseWriter, request *http.Request) {
	var input UpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	story, err := handler.service.UpdateStory(request.Context(), requestutil.Param(request, "slug"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, story)
}

func (handler *Handler) deleteStory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteStory(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
