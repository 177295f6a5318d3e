package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ykhknw/pocketnavi/pkg/database"
	"github.com/ykhknw/pocketnavi/pkg/logging"
	"github.com/ykhknw/pocketnavi/pkg/search"
)

// Server is the thin JSON surface over the search engine. It parses query
// parameters, delegates to the engine and encodes typed results; no search
// semantics live here.
type Server struct {
	engine   *search.Engine
	cache    *database.DatabaseManager
	cacheTTL time.Duration
	pageSize int
	logger   logging.Logger
}

// NewServer creates the HTTP surface. cache may be nil to disable result
// caching.
func NewServer(engine *search.Engine, cache *database.DatabaseManager, cacheTTL time.Duration, pageSize int, logger logging.Logger) *Server {
	if pageSize < 1 {
		pageSize = search.DefaultPageSize
	}
	return &Server{
		engine:   engine,
		cache:    cache,
		cacheTTL: cacheTTL,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/nearby", s.handleNearby)
	mux.HandleFunc("/api/architects/", s.handleArchitect)
	mux.HandleFunc("/api/buildings/", s.handleBuilding)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if s.cache != nil {
		if stats, err := s.cache.GetCacheStats(); err == nil {
			payload["cache"] = stats
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := search.SearchRequest{
		Query:         params.Get("q"),
		ArchitectName: params.Get("architect"),
		Page:          parseInt(params.Get("page"), 1),
		PageSize:      parseInt(params.Get("pageSize"), s.pageSize),
		Media: search.MediaFlags{
			HasPhotos: params.Get("photos") == "1",
			HasVideos: params.Get("videos") == "1",
		},
		BuildingTypes: params["type"],
		Prefectures:   params["prefecture"],
		Years:         params["year"],
		Lang:          parseLang(params.Get("lang")),
	}

	cacheKey := r.URL.RawQuery
	if s.cache != nil {
		var cached searchResponse
		if hit, err := s.cache.GetCachedSearchResult(cacheKey, &cached); err == nil && hit {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result := s.engine.Search(req)
	response := toSearchResponse(result)

	if s.cache != nil {
		if err := s.cache.CacheSearchResult(cacheKey, response, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache search result", map[string]interface{}{
				"key": cacheKey,
			})
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	lat, latErr := strconv.ParseFloat(params.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(params.Get("lng"), 64)
	radius, radiusErr := strconv.ParseFloat(params.Get("radius"), 64)
	if latErr != nil || lngErr != nil || radiusErr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "lat, lng and radius are required numeric parameters",
		})
		return
	}

	result := s.engine.SearchByLocation(search.GeoSearchRequest{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radius,
		Page:     parseInt(params.Get("page"), 1),
		PageSize: parseInt(params.Get("pageSize"), s.pageSize),
		Media: search.MediaFlags{
			HasPhotos: params.Get("photos") == "1",
			HasVideos: params.Get("videos") == "1",
		},
		Lang: parseLang(params.Get("lang")),
	})

	writeJSON(w, http.StatusOK, toSearchResponse(result))
}

func (s *Server) handleArchitect(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/api/architects/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	params := r.URL.Query()
	result := s.engine.SearchByArchitectSlug(
		slug,
		parseInt(params.Get("page"), 1),
		parseInt(params.Get("pageSize"), s.pageSize),
		parseLang(params.Get("lang")),
	)

	if result.ArchitectDisplayName == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "architect not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, architectResponse{
		Architect:      result.ArchitectDisplayName,
		ArchitectSlug:  result.ArchitectSlug,
		SearchResponse: toSearchResponse(result.SearchResult),
	})
}

func (s *Server) handleBuilding(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/api/buildings/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	building, found := s.engine.GetBySlug(slug)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "building not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, toBuildingResponse(building))
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func parseLang(raw string) search.Lang {
	if raw == "en" {
		return search.LangEn
	}
	return search.LangJa
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
