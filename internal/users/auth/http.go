// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth provides the HTTP delivery layer for the session lifecycle.

# Architecture

The handler acts as a thin mediation layer between the web and [Service]:
  - Protocol: JSON, except registration which is multipart (avatar and cover).
  - Security: Sets and clears the access and refresh token cookies.

This layer is strictly responsible for transport concerns (status codes, cookies, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/internal/platform/validate"
)

// # Definitions & Constructors

// HandlerConfig holds transport settings for the auth endpoints.
type HandlerConfig struct {
	// UploadDir receives spooled multipart files.
	UploadDir string

	// CookieSecure sets the Secure attribute on session cookies.
	CookieSecure bool
}

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	config      HandlerConfig
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, config HandlerConfig) *Handler {
	return &Handler{authService: service, config: config}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register        : Creates a new account (multipart).
//   - POST /login           : Starts a session.
//   - POST /refresh         : Rotates the refresh token.
//   - POST /logout          : Ends the session.
//   - POST /change-password : Replaces the password.
//   - GET  /me              : Returns the caller.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// identifier accepts either an explicit identifier or the username/email fields.
func (input loginRequest) identifier() string {
	switch {
	case input.Identifier != "":
		return input.Identifier
	case input.Username != "":
		return input.Username
	default:
		return input.Email
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

/*
POST /api/v1/auth/register

Description: Spools the avatar and optional cover image, then creates the
identity. Spooled files are removed whatever the outcome.

Request:
  - Body: multipart (username, email, fullName, password, avatar, coverImage)

Response:
  - 201: User: Created user profile
  - 400: ValidationError: Missing fields or avatar
  - 409: Conflict: Username or email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)
	if err := request.ParseMultipartForm(constants.MaxMemoryBytes); err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldAvatar, "Multipart form required"))
		return
	}

	avatarPath, err := requestutil.SpoolFile(request, FieldAvatar, handler.config.UploadDir)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	coverPath, err := requestutil.SpoolFile(request, FieldCoverImage, handler.config.UploadDir)
	defer requestutil.CleanupSpooled(avatarPath, coverPath)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:   request.FormValue(FieldUsername),
		Email:      request.FormValue(FieldEmail),
		FullName:   request.FormValue(FieldFullName),
		Password:   request.FormValue(FieldPassword),
		AvatarPath: avatarPath,
		CoverPath:  coverPath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login

Request:
  - Body: loginRequest (identifier | username | email, password)

Response:
  - 200: Session: Token pair and user profile; both cookies set
  - 401: Unauthorized: Wrong password
  - 404: NotFound: No such user
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.identifier(), input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, session)
}

/*
POST /api/v1/auth/refresh

Description: Reads the refresh token from the cookie, falling back to the body.

Response:
  - 200: Session: Rotated token pair; both cookies replaced
  - 401: Unauthorized: Invalid, expired or superseded token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var token string
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var input refreshRequest
		if err := requestutil.DecodeOptionalJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
		token = input.RefreshToken
	}

	session, err := handler.authService.Refresh(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, session)
}

/*
POST /api/v1/auth/logout

Response:
  - 204: Session ended, cookies cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookies(writer)
	respond.NoContent(writer)
}

/*
POST /api/v1/auth/change-password

Response:
  - 204: Password replaced; the session stays valid
  - 401: Unauthorized: Wrong old password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/auth/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Cookie Helpers

func (handler *Handler) setSessionCookies(writer http.ResponseWriter, session *Session) {
	handler.writeCookie(writer, constants.AccessTokenCookieName, session.AccessToken, session.AccessTokenExpiresAt)
	handler.writeCookie(writer, constants.RefreshTokenCookieName, session.RefreshToken, session.RefreshTokenExpiresAt)
}

func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	handler.writeCookie(writer, constants.AccessTokenCookieName, "", time.Time{})
	handler.writeCookie(writer, constants.RefreshTokenCookieName, "", time.Time{})
}

// writeCookie sets a session cookie; an empty value expires it.
func (handler *Handler) writeCookie(writer http.ResponseWriter, name, value string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.CookiePath,
		Expires:  expires,
		Secure:   handler.config.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if value == "" {
		cookie.Expires = time.Time{}
		cookie.MaxAge = -1
	}
	http.SetCookie(writer, cookie)
}
