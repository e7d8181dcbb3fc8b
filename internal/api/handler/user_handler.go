package handler

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/streamhub/user-service/internal/api/metrics"
	"github.com/streamhub/user-service/internal/core/domain"
	"github.com/streamhub/user-service/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated caller's account.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "current user fetched successfully", user)
}

// UpdateAccount changes the caller's display name and/or email.
//
// @Summary      Update account details
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateAccountRequest  true  "Fields to update"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  map[string]any
// @Router       /users/me [patch]
func (h *UserHandler) UpdateAccount(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.UpdateAccount(c.Request().Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "account details updated", updated.Public())
}

// UpdateAvatar replaces the caller's avatar.
//
// @Summary      Update avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData  file  true  "New avatar image"
// @Success      200     {object}  apiResponse
// @Failure      400     {object}  map[string]any
// @Router       /users/me/avatar [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	return h.updateMedia(c, "avatar", h.users.UpdateAvatar)
}

// UpdateCoverImage replaces the caller's cover image.
//
// @Summary      Update cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        cover_image  formData  file  true  "New cover image"
// @Success      200          {object}  apiResponse
// @Failure      400          {object}  map[string]any
// @Router       /users/me/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(c echo.Context) error {
	return h.updateMedia(c, "cover_image", h.users.UpdateCoverImage)
}

// ChannelProfile returns a channel's public profile.
//
// @Summary      Channel profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Channel username"
// @Success      200       {object}  apiResponse
// @Failure      404       {object}  map[string]any
// @Router       /users/c/{username} [get]
func (h *UserHandler) ChannelProfile(c echo.Context) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}

	username := c.Param("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	profile, err := h.users.ChannelProfile(c.Request().Context(), username, viewer.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "channel profile fetched successfully", profile)
}

// WatchHistory returns the caller's watch history.
//
// @Summary      Watch history
// @Tags         users
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /users/history [get]
func (h *UserHandler) WatchHistory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	videos, err := h.users.WatchHistory(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "watch history fetched successfully", videos)
}

// updateMedia handles the shared multipart flow of both media endpoints:
// spool the file, run the service update, clean up the spool file.
func (h *UserHandler) updateMedia(
	c echo.Context,
	field string,
	update func(ctx context.Context, id, localPath string) (*domain.User, error),
) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(field)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, field+" file is required")
	}

	localPath, err := saveTempUpload(fh)
	if err != nil {
		return err
	}
	defer os.Remove(localPath)

	updated, err := update(c.Request().Context(), user.ID, localPath)
	if err != nil {
		return err
	}

	metrics.MediaUploadsTotal.WithLabelValues(field).Inc()
	return respond(c, http.StatusOK, field+" updated successfully", updated.Public())
}
