package rest

import (
	"encoding/json"
	"net/http"

	"github.com/fortuna/esake/internal/boxscore"
)

type apiExtractRequest struct {
	Text  string   `json:"text"`
	Teams []string `json:"teams"`
}

type apiExtractResponse struct {
	*boxscore.BoxScore
	Anomalies map[string][]string `json:"anomalies,omitempty"`
}

// Extract handles POST /api/v1/extract. The body carries the flattened
// page text and optionally the two team names; without them the names
// are read from the page headers.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req apiExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required", nil)
		return
	}

	var (
		box *boxscore.BoxScore
		err error
	)
	switch len(req.Teams) {
	case 0:
		box, err = h.extractor.ExtractGame(req.Text)
	case 2:
		box, err = h.extractor.Extract(req.Text, [2]string{req.Teams[0], req.Teams[1]})
	default:
		respondError(w, http.StatusBadRequest, "teams must name exactly two teams", nil)
		return
	}

	if err != nil {
		if boxscore.IsSkippable(err) {
			respondError(w, http.StatusUnprocessableEntity, "Failed to extract box score", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to extract box score", err)
		return
	}

	resp := apiExtractResponse{BoxScore: box}
	for _, row := range box.Rows {
		if bad := row.ShotAnomalies(); len(bad) > 0 {
			if resp.Anomalies == nil {
				resp.Anomalies = make(map[string][]string)
			}
			resp.Anomalies[row.PlayerName] = bad
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
