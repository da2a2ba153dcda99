package health

import (
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"

	httputil "stayrate/pkg/http"
	"stayrate/pkg/logger"
)

type Response struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

// Handler serves liveness and readiness probes. Readiness checks that the
// data directory backing the JSON collections is reachable.
type Handler struct {
	dataDir string
	log     *logger.Logger
}

func NewHandler(dataDir string, log *logger.Logger) *Handler {
	return &Handler{dataDir: dataDir, log: log}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, Response{Status: "ok"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "error", err)
	}
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if info, err := os.Stat(h.dataDir); err != nil || !info.IsDir() {
		// A missing directory is fine: the file store creates it lazily on
		// first write. Only an existing non-directory path is a hard error.
		if err == nil || !os.IsNotExist(err) {
			h.log.Error("Storage readiness check failed",
				"data_dir", h.dataDir,
				"error", err,
				"path", r.URL.Path,
			)
			if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, Response{
				Status:  "unavailable",
				Storage: "error",
			}); writeErr != nil {
				h.log.Error("failed to write JSON response", "handler", "Ready", "error", writeErr)
			}
			return
		}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, Response{
		Status:  "ready",
		Storage: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
