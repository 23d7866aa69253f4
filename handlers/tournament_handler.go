package handlers

import (
	"net/http"

	"github.com/gmfurlan/bolao-backend/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

// SaveFinalResult upserts the tournament podium and final score, then
// rescores every final prediction.
func (h *TournamentHandler) SaveFinalResult(w http.ResponseWriter, r *http.Request) {
	var input services.TournamentResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.tournamentService.SaveFinalResult(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament_result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetFinalResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.tournamentService.GetFinalResult(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament_result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
