package proxy

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"parkscout/utils"

	"github.com/julienschmidt/httprouter"
)

const upstreamBase = "https://developer.nps.gov/api/v1"

// NPSProxy forwards GET requests under /api/nps to the upstream API with the
// server-side key injected, surfacing upstream status and body verbatim.
type NPSProxy struct {
	base   string
	client *http.Client
}

func NewNPSProxy() *NPSProxy {
	return &NPSProxy{
		base: upstreamBase,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (p *NPSProxy) Forward(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	key := os.Getenv("NPS_API_KEY")
	if key == "" {
		utils.RespondWithError(w, http.StatusInternalServerError, "NPS_API_KEY not configured")
		return
	}

	// Preserve the original query string untouched.
	upstreamURL := p.base + ps.ByName("path")
	if r.URL.RawQuery != "" {
		upstreamURL += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), "GET", upstreamURL, nil)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Upstream error")
		return
	}
	req.Header.Set("X-Api-Key", key)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[nps proxy] error: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Upstream error")
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[nps proxy] copy error: %v", err)
	}
}
