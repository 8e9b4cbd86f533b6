package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/Dealer86/Monte-Carlo/charts"
	m "github.com/Dealer86/Monte-Carlo/models"
)

const (
	DefaultAddr = ":8080"

	defaultHistoryYears = 1
	defaultRunsLimit    = 20
)

func GetHttpServer(sc *ServiceContext) *http.Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/api/ping", ping)
	router.Post("/api/simulations", sc.handleRunSimulation)
	router.Post("/api/simulations/chart", sc.handleSimulationChart)
	router.Get("/api/coins/{coinID}/history", sc.handleCoinHistory)
	router.Get("/api/coins/{coinID}/history/chart", sc.handleCoinHistoryChart)
	router.Get("/api/runs", sc.handleRecentRuns)

	server := &http.Server{
		Addr:        DefaultAddr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// large trial counts take a while, give responses room to finish
		WriteTimeout:   120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return server
}

func ping(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (sc *ServiceContext) handleRunSimulation(w http.ResponseWriter, r *http.Request) {
	config, ok := decodeSimulationConfig(w, r)
	if !ok {
		return
	}

	res, err := sc.WithContext(r.Context()).RunSimulation(config)
	if err != nil {
		writeError(w, err)
		return
	}

	response := m.GetServiceResponseOk(res)
	writeJson(w, http.StatusOK, response)
}

func (sc *ServiceContext) handleSimulationChart(w http.ResponseWriter, r *http.Request) {
	config, ok := decodeSimulationConfig(w, r)
	if !ok {
		return
	}

	res, err := sc.WithContext(r.Context()).RunSimulation(config)
	if err != nil {
		writeError(w, err)
		return
	}

	// rendered from the frozen result of the run above, never a re-run
	png, err := charts.SimulationHistogramPNG(res)
	if err != nil {
		writeError(w, err)
		return
	}

	writePng(w, png)
}

func (sc *ServiceContext) handleCoinHistory(w http.ResponseWriter, r *http.Request) {
	history, ok := sc.fetchHistoryForRequest(w, r)
	if !ok {
		return
	}

	summary, err := SummarizeHistory(history)
	if err != nil {
		writeError(w, err)
		return
	}

	response := m.GetServiceResponseOk(&summary)
	writeJson(w, http.StatusOK, response)
}

func (sc *ServiceContext) handleCoinHistoryChart(w http.ResponseWriter, r *http.Request) {
	history, ok := sc.fetchHistoryForRequest(w, r)
	if !ok {
		return
	}

	summary, err := SummarizeHistory(history)
	if err != nil {
		writeError(w, err)
		return
	}

	png, err := charts.PriceHistoryPNG(history, summary)
	if err != nil {
		writeError(w, err)
		return
	}

	writePng(w, png)
}

func (sc *ServiceContext) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	if sc.RunHistory == nil {
		writeJson(w, http.StatusServiceUnavailable, m.GetServiceResponseError("run history is not configured"))
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeJson(w, http.StatusBadRequest, m.GetServiceResponseError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	runs, err := sc.RunHistory.GetRecentSimulationRuns(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	response := m.GetServiceResponseOk(&runs)
	writeJson(w, http.StatusOK, response)
}

func (sc *ServiceContext) fetchHistoryForRequest(w http.ResponseWriter, r *http.Request) (*m.PriceHistory, bool) {
	coinID := chi.URLParam(r, "coinID")

	years := defaultHistoryYears
	if v := r.URL.Query().Get("years"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeJson(w, http.StatusBadRequest, m.GetServiceResponseError("years must be a positive integer"))
			return nil, false
		}
		years = parsed
	}

	history, err := sc.PriceSource.FetchPriceHistory(r.Context(), coinID, years)
	if err != nil {
		writeError(w, fmt.Errorf("%w: fetching %s history: %v", ErrDataUnavailable, coinID, err))
		return nil, false
	}

	return history, true
}

func decodeSimulationConfig(w http.ResponseWriter, r *http.Request) (m.SimulationConfig, bool) {
	var config m.SimulationConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		writeJson(w, http.StatusBadRequest, m.GetServiceResponseError("malformed simulation config: "+err.Error()))
		return config, false
	}
	return config, true
}

// statusForError separates caller mistakes from data problems so operators can
// tell a nonsensical configuration apart from a vendor outage.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrDataUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJson(w, statusForError(err), m.GetServiceResponseError(err.Error()))
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warnf("Error encoding response body: %v", err)
	}
}

func writePng(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Warnf("Error writing chart response: %v", err)
	}
}
