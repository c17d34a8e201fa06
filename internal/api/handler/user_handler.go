package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/api/response"
	"github.com/openaero/platform/internal/core/ports"
)

type UserHandler struct {
	profiles ports.ProfileService
}

func NewUserHandler(profiles ports.ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// Me returns the caller's profile with the role resolved for this request.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=domain.User}
// @Failure      401  {object}  response.Envelope
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.profiles.Me(c.Request().Context(), p.ID, p.Email, p.Role)
	if err != nil {
		return err
	}
	return response.OK(c, user, "")
}
