package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type endpointDoc struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
	Query       string `json:"query,omitempty"`
}

type apiDescription struct {
	Name       string         `json:"name"`
	Version    string         `json:"version"`
	Endpoints  []endpointDoc  `json:"endpoints"`
	RateLimits map[string]int `json:"rate_limits"`
}

// IndexHandler describes the API at the root path: JSON for machines,
// plain text for everyone else.
type IndexHandler struct {
	description apiDescription
}

func NewIndexHandler(r *gin.Engine, rateLimits map[string]int) {
	handler := &IndexHandler{
		description: apiDescription{
			Name:    "GeeksforGeeks Profile API",
			Version: "1.0",
			Endpoints: []endpointDoc{
				{Path: "/{username}", Method: http.MethodGet, Description: "General profile info and solved problem stats"},
				{Path: "/{username}/calendar", Method: http.MethodGet, Description: "Yearwise submission calendar", Query: "year (optional, 2000..current)"},
				{Path: "/{username}/contest", Method: http.MethodGet, Description: "Contest rating and history", Query: "year (optional, 2000..current)"},
				{Path: "/health", Method: http.MethodGet, Description: "Liveness check"},
			},
			RateLimits: rateLimits,
		},
	}
	r.GET("/", handler.Get)
}

// Get godoc
// @Summary      Describe the API
// @Description  Machine-readable description with format=json or Accept: application/json, human-readable otherwise
// @Tags         meta
// @Produce      json
// @Produce      plain
// @Success      200
// @Router       / [get]
func (h *IndexHandler) Get(c *gin.Context) {
	if c.Query("format") == "json" || strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, h.description)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s v%s\n\n", h.description.Name, h.description.Version)
	for _, e := range h.description.Endpoints {
		fmt.Fprintf(&b, "  %-6s %-24s %s\n", e.Method, e.Path, e.Description)
		if e.Query != "" {
			fmt.Fprintf(&b, "         %-24s query: %s\n", "", e.Query)
		}
	}
	fmt.Fprintf(&b, "\nRate limits per client address: %d/minute, %d/hour, %d/day\n",
		h.description.RateLimits["per_minute"], h.description.RateLimits["per_hour"], h.description.RateLimits["per_day"])
	b.WriteString("Append ?format=json or send Accept: application/json for a machine-readable description.\n")

	c.String(http.StatusOK, b.String())
}
