// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides the HTTP delivery layer for profile management.

# Security

Everything except the channel profile lookup requires an authenticated
session provided by the RequireAuth middleware.
*/
package account

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

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
	uploadDir      string
}

// NewHandler constructs a new account [Handler]. Image uploads are spooled to uploadDir.
func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{accountService: service, uploadDir: uploadDir}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public channel discovery
	router.Get("/c/{username}", handler.channelProfile)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/current-user", handler.getCurrent)
		r.Patch("/update-account", handler.updateDetails)
		r.Patch("/avatar", handler.replaceImage(FieldAvatar))
		r.Patch("/cover-image", handler.replaceImage(FieldCoverImage))
		r.Get("/history", handler.watchHistory)
	})

	return router
}

type updateDetailsRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

/*
GET /api/v1/users/current-user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: Unauthorized: Authentication required
*/
func (handler *Handler) getCurrent(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetCurrent(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/update-account.

Response:
  - 200: User: Updated profile
  - 400: ValidationError
  - 409: Conflict: Email already in use
*/
func (handler *Handler) updateDetails(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateDetailsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateDetails(request.Context(), userID, input.FullName, input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/avatar
PATCH /api/v1/users/cover-image.

Description: Multipart upload of a single image; the superseded image is
released after the row points at the new one.

Response:
  - 200: User: Updated profile
  - 400: ValidationError: File missing
  - 500: Internal: Upload failed (profile unchanged)
*/
func (handler *Handler) replaceImage(field string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)
		if err := request.ParseMultipartForm(constants.MaxMemoryBytes); err != nil {
			respond.Error(writer, request, validate.RequiredError(field, "Multipart form required"))
			return
		}

		localPath, err := requestutil.SpoolFile(request, field, handler.uploadDir)
		defer requestutil.CleanupSpooled(localPath)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		update := handler.accountService.UpdateAvatar
		if field == FieldCoverImage {
			update = handler.accountService.UpdateCoverImage
		}

		user, err := update(request.Context(), userID, localPath)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, user)
	}
}

/*
GET /api/v1/users/c/{username}.

Description: Public; isSubscribed reflects the caller when authenticated.

Response:
  - 200: ChannelProfile
  - 404: NotFound: Channel does not exist
*/
func (handler *Handler) channelProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.accountService.ChannelProfile(
		request.Context(),
		requestutil.Param(request, FieldUsername),
		ctxutil.ActorID(request.Context()),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GET /api/v1/users/history.

Response:
  - 200: []HistoryEntry: Paginated, most recent first
*/
func (handler *Handler) watchHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	entries, total, err := handler.accountService.WatchHistory(request.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}
