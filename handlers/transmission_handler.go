package handlers

import (
	"net/http"

	"github.com/torneos/esports-api/services"
)

type TransmissionHandler struct {
	transmissionService services.TransmissionService
}

func NewTransmissionHandler(transmissionService services.TransmissionService) *TransmissionHandler {
	return &TransmissionHandler{transmissionService: transmissionService}
}

func (h *TransmissionHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	transmissions, err := h.transmissionService.ListByMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"transmissions": transmissions}, nil)
}

func (h *TransmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}

	var body struct {
		MatchID  int    `json:"match_id"`
		Platform string `json:"platform"`
		URL      string `json:"url"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	transmission, err := h.transmissionService.CreateTransmission(r.Context(), actor, services.TransmissionInput{
		MatchID:  body.MatchID,
		Platform: body.Platform,
		URL:      body.URL,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"transmission": transmission}, nil)
}

func (h *TransmissionHandler) Update(w http.ResponseWriter, r *http.Request) {
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
		MatchID  int    `json:"match_id"`
		Platform string `json:"platform"`
		URL      string `json:"url"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	transmission, err := h.transmissionService.UpdateTransmission(r.Context(), actor, id, services.TransmissionInput{
		MatchID:  body.MatchID,
		Platform: body.Platform,
		URL:      body.URL,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"transmission": transmission}, nil)
}

func (h *TransmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.transmissionService.DeleteTransmission(r.Context(), actor, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "transmission deleted"}, nil)
}
