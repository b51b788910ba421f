package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/store"
	"github.com/fortuna/esake/internal/store/repository"
	"github.com/gorilla/mux"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db        *store.Database
	seasons   *repository.SeasonRepository
	extractor *boxscore.Extractor
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, extractor *boxscore.Extractor) *Handler {
	if extractor == nil {
		extractor = boxscore.NewExtractor()
	}
	return &Handler{
		db:        db,
		seasons:   repository.NewSeasonRepository(db),
		extractor: extractor,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "esake",
		"version": "1.0.0",
	})
}

// GetSeasons lists every loaded season
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasons.ListSeasons(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch seasons", err)
		return
	}
	respondJSON(w, http.StatusOK, seasons)
}

// GetPlayers returns the players table of a season
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	label, ok := h.resolveSeason(w, r)
	if !ok {
		return
	}

	players, err := h.seasons.ListPlayers(r.Context(), label)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch players", err)
		return
	}

	respondJSON(w, http.StatusOK, players)
}

// SearchPlayers matches players by canonicalized name substring
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'q' is required", nil)
		return
	}

	label, ok := h.resolveSeason(w, r)
	if !ok {
		return
	}

	players, err := h.seasons.SearchPlayers(r.Context(), label, query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search players", err)
		return
	}

	respondJSON(w, http.StatusOK, players)
}

// GetPlayer returns one player with its season summary
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(mux.Vars(r)["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	label, ok := h.resolveSeason(w, r)
	if !ok {
		return
	}

	player, err := h.seasons.GetPlayer(r.Context(), label, playerID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player", err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// GetTeams returns the teams table of a season
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	label, ok := h.resolveSeason(w, r)
	if !ok {
		return
	}

	teams, err := h.seasons.ListTeams(r.Context(), label)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

// GetTeam returns one team with its summary and roster
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.Atoi(mux.Vars(r)["teamID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	label, ok := h.resolveSeason(w, r)
	if !ok {
		return
	}

	team, err := h.seasons.GetTeam(r.Context(), label, teamID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team", err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// GetPlayerStats returns per-player season averages
func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	h.getSummaries(w, r, store.SummaryPlayers)
}

// GetTeamStats returns per-team season averages
func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	h.getSummaries(w, r, store.SummaryTeams)
}

func (h *Handler) getSummaries(w http.ResponseWriter, r *http.Request, kind store.SummaryKind) {
	label, ok := h.resolveSeason(w, r)
	if !ok {
		return
	}

	rows, err := h.seasons.ListSummaries(r.Context(), label, kind)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch season stats", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// GetGameBoxScore returns the stored rows of one game
func (h *Handler) GetGameBoxScore(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	label, ok := h.resolveSeason(w, r)
	if !ok {
		return
	}

	rows, err := h.seasons.GameBoxScore(r.Context(), label, gameID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch box score", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id": gameID,
		"season":  label,
		"rows":    rows,
	})
}

// resolveSeason reads the season query parameter, defaulting to the most
// recently loaded season. It writes the error response itself.
func (h *Handler) resolveSeason(w http.ResponseWriter, r *http.Request) (string, bool) {
	if label := r.URL.Query().Get("season"); label != "" {
		return label, true
	}

	label, err := h.seasons.LatestSeason(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No season loaded", err)
		return "", false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resolve season", err)
		return "", false
	}
	return label, true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
