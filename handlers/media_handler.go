package handlers

import (
	"net/http"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/services"
)

type MediaHandler struct {
	mediaService services.MediaService
}

func NewMediaHandler(mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.mediaService.GetAllMedia(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"media": items}, nil)
}

func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication context")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, closer, err := fileFromForm(r, "file")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	media, err := h.mediaService.UploadMedia(r.Context(), actor, services.UploadMediaInput{
		Title: r.FormValue("title"),
		Type:  models.MediaType(r.FormValue("type")),
		File:  file,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"media": media}, nil)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.mediaService.DeleteMedia(r.Context(), actor, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "media deleted"}, nil)
}
