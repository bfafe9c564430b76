// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the HTTP layer for playlists.
type Handler struct {
	service *Service
}

// NewHandler constructs a new playlist [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /playlists.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{playlistId}", handler.get)
	router.Get("/user/{userId}", handler.listByOwner)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.create)
		protected.Patch("/{playlistId}", handler.update)
		protected.Delete("/{playlistId}", handler.delete)
		protected.Patch("/add/{videoId}/{playlistId}", handler.addVideo)
		protected.Patch("/remove/{videoId}/{playlistId}", handler.removeVideo)
	})

	return router
}

type playlistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GET /api/v1/playlists/{playlistId}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	playlist, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldPlaylistID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

// GET /api/v1/playlists/user/{userId}
func (handler *Handler) listByOwner(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	playlists, total, err := handler.service.ListByOwner(request.Context(), requestutil.Param(request, FieldUserID), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, playlists, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/playlists.

Response:
  - 201: Playlist
  - 400: ValidationError: Missing name
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input playlistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var name, description string
	if input.Name != nil {
		name = *input.Name
	}
	if input.Description != nil {
		description = *input.Description
	}

	playlist, err := handler.service.Create(request.Context(), actorID, name, description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, playlist)
}

// PATCH /api/v1/playlists/{playlistId}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input playlistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Update(request.Context(), actorID, requestutil.Param(request, FieldPlaylistID), input.Name, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

// DELETE /api/v1/playlists/{playlistId}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actorID, requestutil.Param(request, FieldPlaylistID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PATCH /api/v1/playlists/add/{videoId}/{playlistId}.

Response:
  - 204: Added
  - 403: Forbidden: Not the playlist owner
  - 404: NotFound: Playlist or video
  - 409: Conflict: Already in the playlist
*/
func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.AddVideo(request.Context(), actorID,
		requestutil.Param(request, FieldPlaylistID), requestutil.Param(request, FieldVideoID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// PATCH /api/v1/playlists/remove/{videoId}/{playlistId}
func (handler *Handler) removeVideo(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.RemoveVideo(request.Context(), actorID,
		requestutil.Param(request, FieldPlaylistID), requestutil.Param(request, FieldVideoID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
