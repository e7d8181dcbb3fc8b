package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamhub/user-service/internal/api/metrics"
	"github.com/streamhub/user-service/internal/api/middleware"
	"github.com/streamhub/user-service/internal/core/domain"
	"github.com/streamhub/user-service/internal/core/ports"
	"github.com/streamhub/user-service/internal/core/service"
)

// RefreshTokenCookie is the HTTP-only cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// CookieSettings controls how the token cookies are issued.
type CookieSettings struct {
	// Secure marks cookies TLS-only; enabled in production.
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	auth    ports.AuthService
	storage ports.MediaStorage
	cleanup service.MediaCleanup
	cookies CookieSettings
}

func NewAuthHandler(auth ports.AuthService, storage ports.MediaStorage, cleanup service.MediaCleanup, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{auth: auth, storage: storage, cleanup: cleanup, cookies: cookies}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        full_name    formData  string  true   "Display name"
// @Param        username     formData  string  true   "Unique username"
// @Param        email        formData  string  true   "Unique email"
// @Param        password     formData  string  true   "Password"
// @Param        avatar       formData  file    true   "Avatar image"
// @Param        cover_image  formData  file    false  "Cover image"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar is required")
	}

	avatarURL, err := h.uploadPart(c, avatar)
	if err != nil {
		return err
	}

	var coverURL string
	if cover, err := c.FormFile("cover_image"); err == nil {
		if coverURL, err = h.uploadPart(c, cover); err != nil {
			return err
		}
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		FullName:      req.FullName,
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	})
	if err != nil {
		// The account was never created; reclaim the assets uploaded for it.
		h.discardUploads(req.Username, avatarURL, coverURL)
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return respond(c, http.StatusCreated, "user registered successfully", user.Public())
}

// Login verifies credentials and issues a token pair.
//
// @Summary      Login with username or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username or email is required")
	}

	user, pair, err := h.auth.Login(c.Request().Context(), identifier, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.setAuthCookies(c, pair)
	return respond(c, http.StatusOK, "user logged in successfully", loginResponse{
		User:         user.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Rotate the refresh token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token when not sent as a cookie"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Router       /users/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := h.refreshTokenFromRequest(c)

	pair, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionInvalidated):
			metrics.TokenRefreshTotal.WithLabelValues("superseded").Inc()
		default:
			metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}
	metrics.TokenRefreshTotal.WithLabelValues("rotated").Inc()

	h.setAuthCookies(c, pair)
	return respond(c, http.StatusOK, "access token refreshed", tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout clears the caller's session.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), user.ID); err != nil {
		return err
	}

	h.clearAuthCookies(c)
	return respond(c, http.StatusOK, "user logged out successfully", nil)
}

// ChangePassword verifies the old password and sets a new one.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Router       /users/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ChangePassword(c.Request().Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password changed successfully", nil)
}

// uploadPart spools the multipart file to disk, uploads it and removes the
// local spool file.
func (h *AuthHandler) uploadPart(c echo.Context, fh *multipart.FileHeader) (string, error) {
	localPath, err := saveTempUpload(fh)
	if err != nil {
		return "", err
	}
	defer os.Remove(localPath)

	return h.storage.Upload(c.Request().Context(), localPath)
}

// discardUploads schedules deletion of media uploaded for an account that
// was never created.
func (h *AuthHandler) discardUploads(owner string, urls ...string) {
	for _, url := range urls {
		if url != "" {
			h.cleanup.Enqueue(owner, url)
		}
	}
}

func (h *AuthHandler) refreshTokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req refreshRequest
	if err := c.Bind(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (h *AuthHandler) setAuthCookies(c echo.Context, pair *domain.TokenPair) {
	now := time.Now()
	c.SetCookie(authCookie(middleware.AccessTokenCookie, pair.AccessToken, now.Add(h.cookies.AccessTTL), h.cookies.Secure))
	c.SetCookie(authCookie(RefreshTokenCookie, pair.RefreshToken, now.Add(h.cookies.RefreshTTL), h.cookies.Secure))
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	expired := time.Unix(0, 0)
	access := authCookie(middleware.AccessTokenCookie, "", expired, h.cookies.Secure)
	refresh := authCookie(RefreshTokenCookie, "", expired, h.cookies.Secure)
	access.MaxAge = -1
	refresh.MaxAge = -1
	c.SetCookie(access)
	c.SetCookie(refresh)
}

func authCookie(name, value string, expires time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
