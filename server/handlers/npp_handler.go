package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"npp-server/dao/redis"
	"npp-server/models"
)

const (
	LAT_QUERY_ARG       = "lat"
	LON_QUERY_ARG       = "lon"
	RADIUS_QUERY_ARG    = "radius"
	REGION_ID_QUERY_ARG = "region_id"
	DATE_QUERY_ARG      = "date"
)

// RegionWithDiagnostics pairs a Region with its cached first-period
// diagnostics, when available.
type RegionWithDiagnostics struct {
	Region      models.Region             `json:"region"`
	Diagnostics *models.PeriodDiagnostics `json:"diagnostics,omitempty"`
}

type NppHandler struct {
	nppDao *redis.RedisNppDAO
}

func NewNppHandler(nppDao *redis.RedisNppDAO) *NppHandler {
	return &NppHandler{nppDao: nppDao}
}

// GetDiagnostics handles GET /v1/npp/diagnostics?region_id=...&date=...
func (h *NppHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	regionID := vals.Get(REGION_ID_QUERY_ARG)
	date := vals.Get(DATE_QUERY_ARG)
	if regionID == "" || date == "" {
		http.Error(w, "Missing argument "+REGION_ID_QUERY_ARG+" or "+DATE_QUERY_ARG, http.StatusBadRequest)
		return
	}

	diagnostics, err := h.nppDao.GetPeriodDiagnostics(regionID, date)
	if err != nil {
		log.Printf("[NppHandler] No diagnostics for %s/%s: %v", regionID, date, err)
		http.Error(w, "Diagnostics not found", http.StatusNotFound)
		return
	}

	writeJSON(w, diagnostics)
}

// GetExportTasks handles GET /v1/npp/exports?region_id=...
func (h *NppHandler) GetExportTasks(w http.ResponseWriter, r *http.Request) {
	regionID := r.URL.Query().Get(REGION_ID_QUERY_ARG)
	if regionID == "" {
		http.Error(w, "Missing argument "+REGION_ID_QUERY_ARG, http.StatusBadRequest)
		return
	}

	tasks, err := h.nppDao.ListExportTasks(regionID)
	if err != nil {
		log.Println("[NppHandler] Error listing export tasks:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	// Stable period order for the client
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Date < tasks[j].Date })

	writeJSON(w, tasks)
}

// GetRegionsNearby handles GET /v1/regions/nearby?lat=...&lon=...&radius=...
func (h *NppHandler) GetRegionsNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, ok := h.parseGeoArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	regions, err := h.nppDao.GetNearbyRegions(lat, lon, radius)
	if err != nil {
		log.Println("[NppHandler] Error loading nearby regions:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.mergeDiagnostics(regions))
}

func (h *NppHandler) parseGeoArgs(vals url.Values, w http.ResponseWriter) (
	lat, lon, radius float64, ok bool,
) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}
	ok = true
	return
}

func (h *NppHandler) mergeDiagnostics(regions []models.Region) []RegionWithDiagnostics {
	out := make([]RegionWithDiagnostics, 0, len(regions))
	for _, region := range regions {
		entry := RegionWithDiagnostics{Region: region}
		keys, err := h.nppDao.ListCachedDiagnosticKeys()
		if err == nil {
			for _, key := range keys {
				if len(key) > len(region.RegionID) && key[:len(region.RegionID)] == region.RegionID {
					date := key[len(region.RegionID)+1:]
					if d, err := h.nppDao.GetPeriodDiagnostics(region.RegionID, date); err == nil {
						entry.Diagnostics = d
						break
					}
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

// Ping handles GET /ping
func (h *NppHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, map[string]string{"status": "pong"})
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}
