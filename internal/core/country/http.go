// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	router.Get("/", handler.listCountries)
	router.Post("/", handler.createCountry)

	router.Route("/{code}", func(countryRoute chi.Router) {
		countryRoute.Get("/", handler.getCountry)
		countryRoute.Patch("/", handler.updateCountry)
		countryRoute.Delete("/", handler.deleteCountry)

		countryRoute.Post("/baked-goods", handler.addBakedGood)
		countryRoute.Patch("/baked-goods/{id}", handler.updateBakedGood)
		countryRoute.Delete("/baked-goods/{id}", handler.deleteBakedGood)

		countryRoute.Post("/ingredients", handler.addIngredient)
		countryRoute.Patch("/ingredients/{id}", handler.updateIngredient)
		countryRoute.Delete("/ingredients/{id}", handler.deleteIngredient)
	})
}

// # Countries

func (handler *Handler) listCountries(writer http.ResponseWriter, request *http.Request) {
	countries, err := handler.service.ListCountries(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, countries)
}

func (handler *Handler) getCountry(writer http.ResponseWriter, request *http.Request) {
	country, err := handler.service.GetCountry(request.Context(), requestutil.Param(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, country)
}

func (handler *Handler) createCountry(writer http.ResponseWriter, request *http.Request) {
	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	country, err := handler.service.CreateCountry(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, country)
}

func (handler *Handler) updateCountry(writer http.ResponseWriter, request *http.Request) {
	var input UpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	country, err := handler.service.UpdateCountry(request.Context(), requestutil.Param(request, "code"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, country)
}

func (handler *Handler) deleteCountry(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCountry(request.Context(), requestutil.Param(request, "code")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Baked Goods

func (handler *Handler) addBakedGood(writer http.ResponseWriter, request *http.Request) {
	var input BakedGoodRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	good, err := handler.service.AddBakedGood(request.Context(), requestutil.Param(request, "code"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, good)
}

func (handler *Handler) updateBakedGood(writer http.ResponseWriter, request *http.Request) {
	goodID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input BakedGoodUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	good, err := handler.service.UpdateBakedGood(request.Context(), requestutil.Param(request, "code"), goodID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, good)
}

func (handler *Handler) deleteBakedGood(writer http.ResponseWriter, request *http.Request) {
	goodID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBakedGood(request.Context(), requestutil.Param(request, "code"), goodID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Ingredients

func (handler *Handler) addIngredient(writer http.ResponseWriter, request *http.Request) {
	var input IngredientRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredient, err := handler.service.AddIngredient(request.Context(), requestutil.Param(request, "code"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, ingredient)
}

func (handler *Handler) updateIngredient(writer http.ResponseWriter, request *http.Request) {
	ingredientID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input IngredientUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredient, err := handler.service.UpdateIngredient(request.Context(), requestutil.Param(request, "code"), ingredientID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ingredient)
}

func (handler *Handler) deleteIngredient(writer http.ResponseWriter, request *http.Request) {
	ingredientID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteIngredient(request.Context(), requestutil.Param(request, "code"), ingredientID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
