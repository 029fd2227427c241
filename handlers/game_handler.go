package handlers

import (
	"net/http"
	"strconv"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// List is public. Anonymous callers see active games only; ?all=true is
// honored so the admin panel can show the full catalog.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("all") != "true"

	games, err := h.gameService.GetAllGames(r.Context(), onlyActive)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil)
}

func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.GetGameByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil)
}

func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.CreateGameInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    models.GameCategory(r.FormValue("category")),
	}

	rules, rulesFile, err := fileFromForm(r, "rules")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if rulesFile != nil {
		defer rulesFile.Close()
	}
	input.Rules = rules

	cover, coverFile, err := fileFromForm(r, "cover")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if coverFile != nil {
		defer coverFile.Close()
	}
	input.Cover = cover

	// Same validator the service consults; rejecting here avoids buffering
	// a doomed upload any further.
	if input.Rules != nil {
		if err := services.ValidateAttachment(services.AttachmentDocument, input.Rules.Filename); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
	}
	if input.Cover != nil {
		if err := services.ValidateAttachment(services.AttachmentImage, input.Cover.Filename); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
	}

	game, err := h.gameService.CreateGame(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"game": game}, nil)
}

// PartialUpdate reads a multipart form where absent fields are left
// untouched. Field-level restrictions for plain admins are enforced in the
// service layer.
func (h *GameHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var update services.PartialGameUpdate
	if values, ok := r.MultipartForm.Value["name"]; ok && len(values) > 0 {
		update.Name = &values[0]
	}
	if values, ok := r.MultipartForm.Value["description"]; ok && len(values) > 0 {
		update.Description = &values[0]
	}
	if values, ok := r.MultipartForm.Value["category"]; ok && len(values) > 0 {
		category := models.GameCategory(values[0])
		update.Category = &category
	}
	if values, ok := r.MultipartForm.Value["active"]; ok && len(values) > 0 {
		active, err := strconv.ParseBool(values[0])
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		update.Active = &active
	}

	rules, rulesFile, err := fileFromForm(r, "rules")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if rulesFile != nil {
		defer rulesFile.Close()
	}
	update.Rules = rules

	cover, coverFile, err := fileFromForm(r, "cover")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if coverFile != nil {
		defer coverFile.Close()
	}
	update.Cover = cover

	if update.Rules != nil {
		if err := services.ValidateAttachment(services.AttachmentDocument, update.Rules.Filename); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
	}
	if update.Cover != nil {
		if err := services.ValidateAttachment(services.AttachmentImage, update.Cover.Filename); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
	}

	game, err := h.gameService.PartialUpdateGame(r.Context(), actor, id, update)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil)
}

func (h *GameHandler) SetActive(w http.ResponseWriter, r *http.Request) {
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
		Active bool `json:"active"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.gameService.SetGameActive(r.Context(), actor, id, body.Active); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "game visibility updated"}, nil)
}

func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.gameService.DeleteGame(r.Context(), actor, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "game deleted"}, nil)
}
