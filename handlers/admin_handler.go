package handlers

import (
	"net/http"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}

	admins, err := h.adminService.ListAdmins(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"admins": admins}, nil)
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	admin, err := h.adminService.CreateAdmin(r.Context(), actor, services.CreateAdminInput{
		Username: body.Username,
		Password: body.Password,
		Role:     models.UserRole(body.Role),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"admin": admin}, nil)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.adminService.DeleteAdmin(r.Context(), actor, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "admin deleted"}, nil)
}

func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		NewPassword string `json:"new_password"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.adminService.ResetPassword(r.Context(), actor, id, body.NewPassword); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "password reset"}, nil)
}

// ChangePassword lets the authenticated admin rotate their own password
// after proving the current one.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.adminService.ChangePassword(r.Context(), actor, body.CurrentPassword, body.NewPassword); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "password changed"}, nil)
}

func (h *AdminHandler) LinkGame(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}
	adminID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	gameID, err := idParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.adminService.LinkGame(r.Context(), actor, adminID, gameID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "game linked"}, nil)
}

func (h *AdminHandler) UnlinkGame(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}
	adminID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	gameID, err := idParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.adminService.UnlinkGame(r.Context(), actor, adminID, gameID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "game unlinked"}, nil)
}
