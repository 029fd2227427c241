package handlers

import (
	"net/http"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(registrationService services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// RegisterTeam creates a pending team registration. The captain is always
// the authenticated caller, never a form field.
func (h *RegistrationHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	gameID, err := formIntValue(r, "game_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.RegisterTeamInput{
		Name:      r.FormValue("name"),
		CaptainID: actor.ID,
		GameID:    gameID,
	}

	logo, logoFile, err := fileFromForm(r, "logo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if logoFile != nil {
		defer logoFile.Close()
	}
	input.Logo = logo

	voucher, voucherFile, err := fileFromForm(r, "voucher")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if voucherFile != nil {
		defer voucherFile.Close()
	}
	input.Voucher = voucher

	team, err := h.registrationService.RegisterTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil)
}

func (h *RegistrationHandler) RegisterIndividual(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	gameID, err := formIntValue(r, "game_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.RegisterIndividualInput{
		UserID: actor.ID,
		GameID: gameID,
	}

	voucher, voucherFile, err := fileFromForm(r, "voucher")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if voucherFile != nil {
		defer voucherFile.Close()
	}
	input.Voucher = voucher

	inscription, err := h.registrationService.RegisterIndividual(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"inscription": inscription}, nil)
}

func (h *RegistrationHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.registrationService.GetTeamByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil)
}

func (h *RegistrationHandler) ListTeamsByGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := idParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.registrationService.ListTeamsByGame(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil)
}

func (h *RegistrationHandler) ListInscriptionsByGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := idParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	inscriptions, err := h.registrationService.ListInscriptionsByGame(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"inscriptions": inscriptions}, nil)
}

func (h *RegistrationHandler) UpdateTeamStatus(w http.ResponseWriter, r *http.Request) {
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
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.registrationService.UpdateTeamStatus(r.Context(), actor, id, models.RegistrationStatus(body.Status))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil)
}

func (h *RegistrationHandler) UpdateInscriptionStatus(w http.ResponseWriter, r *http.Request) {
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
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	inscription, err := h.registrationService.UpdateInscriptionStatus(r.Context(), actor, id, models.RegistrationStatus(body.Status))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"inscription": inscription}, nil)
}

func (h *RegistrationHandler) AddRosterMember(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}
	teamID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		UserID int `json:"user_id"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.AddRosterMember(r.Context(), actor, teamID, body.UserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"message": "player added to roster"}, nil)
}

func (h *RegistrationHandler) RemoveRosterMember(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}
	teamID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := idParam(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.RemoveRosterMember(r.Context(), actor, teamID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "player removed from roster"}, nil)
}
