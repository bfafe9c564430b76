// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video provides the HTTP interface for the video catalogue.

# Routing Strategy

  - Discovery: GET / and GET /{videoID} are public; the caller, if any, decides
    unpublished visibility and view recording.
  - Management: publish, edit, delete and toggle require authentication.
*/
package video

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the HTTP layer for videos.
type Handler struct {
	service   *Service
	uploadDir string
}

// NewHandler constructs a new video [Handler]. Uploads are spooled to uploadDir.
func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

// Routes returns the router mounted at /videos.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{videoId}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.publish)
		protected.Patch("/{videoId}", handler.update)
		protected.Delete("/{videoId}", handler.delete)
		protected.Patch("/toggle/publish/{videoId}", handler.togglePublish)
	})

	return router
}

/*
GET /api/v1/videos.

Request:
  - Query: query, userId, sortBy, sortType, page, limit

Response:
  - 200: []Video: Paginated
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		Query:    values.Get(FieldQuery),
		OwnerID:  values.Get(FieldUserID),
		SortBy:   values.Get(FieldSortBy),
		SortType: values.Get(FieldSortType),
	}

	videos, total, err := handler.service.List(request.Context(), filter, ctxutil.ActorID(request.Context()), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/videos/{videoId}.

Response:
  - 200: Video
  - 404: NotFound: Absent, or unpublished and not the caller's
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	video, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldID), ctxutil.ActorID(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

/*
POST /api/v1/videos.

Request:
  - Body: multipart (title, description, videoFile, thumbnail)

Response:
  - 201: Video: Created, unpublished
  - 400: ValidationError
  - 500: Internal: Upload failed
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.parseMultipart(writer, request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoPath, err := requestutil.SpoolFile(request, FieldVideoFile, handler.uploadDir)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	thumbnailPath, err := requestutil.SpoolFile(request, FieldThumbnail, handler.uploadDir)
	defer requestutil.CleanupSpooled(videoPath, thumbnailPath)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Publish(request.Context(), actorID, PublishInput{
		Title:         request.FormValue(FieldTitle),
		Description:   request.FormValue(FieldDescription),
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

/*
PATCH /api/v1/videos/{videoId}.

Request:
  - Body: multipart (title?, description?, thumbnail?)

Response:
  - 200: Video: Updated
  - 403: Forbidden: Not the owner
  - 404: NotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.parseMultipart(writer, request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	thumbnailPath, err := requestutil.SpoolFile(request, FieldThumbnail, handler.uploadDir)
	defer requestutil.CleanupSpooled(thumbnailPath)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput{ThumbnailPath: thumbnailPath}
	if values, ok := request.MultipartForm.Value[FieldTitle]; ok && len(values) > 0 {
		input.Title = &values[0]
	}
	if values, ok := request.MultipartForm.Value[FieldDescription]; ok && len(values) > 0 {
		input.Description = &values[0]
	}

	video, err := handler.service.UpdateDetails(request.Context(), actorID, requestutil.Param(request, FieldID), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

/*
DELETE /api/v1/videos/{videoId}.

Response:
  - 204: Deleted; blobs released best effort
  - 404: NotFound: Absent or not owned by the caller
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Delete(request.Context(), actorID, requestutil.Param(request, FieldID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// PATCH /api/v1/videos/toggle/publish/{videoId}
func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.TogglePublish(request.Context(), actorID, requestutil.Param(request, FieldID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) parseMultipart(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)
	if err := request.ParseMultipartForm(constants.MaxMemoryBytes); err != nil {
		return validate.RequiredError(FieldVideoFile, "Multipart form required")
	}
	return nil
}
