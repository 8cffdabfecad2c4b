package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kasuboski/seriez/pkg/logger"
	"github.com/kasuboski/seriez/pkg/manager"
	"github.com/kasuboski/seriez/pkg/pagination"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ListSeries lists stored catalogs. Supports page and pageSize query params.
func (s Server) ListSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		params, err := parsePaginationParams(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		series, meta := pagination.Apply(s.manager.ListSeries(r.Context()), params)
		err = writeResponse(w, http.StatusOK, GenericResponse{
			Response: SeriesListResponse{
				Series: series,
				Meta:   meta,
			},
		})
		if err != nil {
			log.Error("failed to write response", zap.Error(err))
		}
	}
}

// SearchSeries searches for a series and replaces its stored catalog
func (s Server) SearchSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var request SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			log.Debug("failed to decode search request", zap.Error(err))
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		if err := s.validate.Struct(request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		series, err := s.manager.Search(r.Context(), request.Name)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, manager.ErrEmptyName) {
				status = http.StatusBadRequest
			}
			log.Error("failed to search series", zap.Error(err))
			writeErrorResponse(w, status, err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: series})
		if err != nil {
			log.Error("failed to write response", zap.Error(err))
		}
	}
}

// ListSeasons lists the seasons of a stored catalog
func (s Server) ListSeasons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		seasons, err := s.manager.Seasons(r.Context(), vars["name"])
		s.respond(w, r, func() any { return toSeasonViews(seasons) }, err)
	}
}

// ListEpisodes lists the episodes of a season
func (s Server) ListEpisodes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		episodes, err := s.manager.Episodes(r.Context(), vars["name"], vars["season"])
		s.respond(w, r, func() any { return toEpisodeViews(episodes) }, err)
	}
}

// ListStreams lists the alternate streams of an episode
func (s Server) ListStreams() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		streams, err := s.manager.Streams(r.Context(), vars["name"], vars["season"], vars["episode"])
		s.respond(w, r, func() any { return toStreamViews(streams) }, err)
	}
}

// respond writes view() or maps err to a status
func (s Server) respond(w http.ResponseWriter, r *http.Request, view func() any, err error) {
	log := logger.FromCtx(r.Context())

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, manager.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, err)
		return
	}

	if err := writeResponse(w, http.StatusOK, GenericResponse{Response: view()}); err != nil {
		log.Error("failed to write response", zap.Error(err))
	}
}

// parsePaginationParams reads page and pageSize from the query string
func parsePaginationParams(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{
		Page:     1,
		PageSize: 0,
	}

	qp := r.URL.Query()

	if pageStr := qp.Get("page"); pageStr != "" {
		page, err := cast.ToIntE(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid page parameter: must be positive integer")
		}
		params.Page = page
	}

	if pageSizeStr := qp.Get("pageSize"); pageSizeStr != "" {
		pageSize, err := cast.ToIntE(pageSizeStr)
		if err != nil || pageSize < 0 {
			return params, fmt.Errorf("invalid pageSize parameter: must be non-negative integer")
		}
		params.PageSize = pageSize
	}

	return params, nil
}
