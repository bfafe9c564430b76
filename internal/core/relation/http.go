// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package relation provides the HTTP interface for subscriptions and likes.

# Routing Strategy

  - /subscriptions: toggle a channel subscription, list subscribers and subscriptions.
  - /likes: toggle likes on videos, comments and tweets, list liked videos.

Every toggle responds 200 with the resulting state.
*/
package relation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for relation edges.
type Handler struct {
	service *Service
}

// NewHandler constructs a new relation [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubscriptionRoutes returns the router mounted at /subscriptions.
func (handler *Handler) SubscriptionRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/c/{channelID}", handler.listSubscribers)
	router.Get("/u/{subscriberID}", handler.listSubscribedChannels)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/c/{channelID}", handler.toggle(KindChannel, "channelID"))
	})

	return router
}

// LikeRoutes returns the router mounted at /likes.
func (handler *Handler) LikeRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/toggle/v/{videoID}", handler.toggle(KindVideo, "videoID"))
	router.Post("/toggle/c/{commentID}", handler.toggle(KindComment, "commentID"))
	router.Post("/toggle/t/{tweetID}", handler.toggle(KindTweet, "tweetID"))
	router.Get("/videos", handler.listLikedVideos)

	return router
}

/*
POST /api/v1/subscriptions/c/{channelID}
POST /api/v1/likes/toggle/{v|c|t}/{id}.

Description: Flips the caller's edge to the target.

Response:
  - 200: ToggleResult: {state: created|removed}
  - 400: ValidationError: Invalid id or self-subscription
  - 401: Unauthorized
  - 404: NotFound: Target does not exist
  - 409: Conflict: A concurrent toggle created the edge first
*/
func (handler *Handler) toggle(kind TargetKind, param string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		actorID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		targetID := requestutil.Param(request, param)
		if err := (&validate.Validator{}).UUID(param, targetID).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}

		state, err := handler.service.Toggle(request.Context(), actorID, Target{Kind: kind, ID: targetID})
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, ToggleResult{Kind: kind, TargetID: targetID, State: state})
	}
}

/*
GET /api/v1/subscriptions/c/{channelID}.

Response:
  - 200: []Channel: Paginated subscribers
*/
func (handler *Handler) listSubscribers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	channels, total, err := handler.service.Subscribers(request.Context(), requestutil.Param(request, "channelID"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, channels, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/subscriptions/u/{subscriberID}.

Response:
  - 200: []Channel: Paginated channels the subscriber follows
*/
func (handler *Handler) listSubscribedChannels(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	channels, total, err := handler.service.SubscribedChannels(request.Context(), requestutil.Param(request, "subscriberID"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, channels, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/likes/videos.

Response:
  - 200: []LikedVideo: Paginated liked videos of the caller
*/
func (handler *Handler) listLikedVideos(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	videos, total, err := handler.service.LikedVideos(request.Context(), actorID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, total))
}
