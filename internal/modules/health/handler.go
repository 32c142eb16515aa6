package health

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Get)
	r.GET("/health/:path_echo", h.Get)
}

type Status struct {
	Status        int    `json:"status"`
	StatusMessage string `json:"status_message"`
	Timestamp     string `json:"timestamp"`
	IPAddress     string `json:"ip_address"`
	Echo          string `json:"echo,omitempty"`
	PathEcho      string `json:"path_echo,omitempty"`
}

// Get is the liveness probe; echo and path_echo are optional round-trip
// fields for smoke-testing routing.
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, Status{
		Status:        http.StatusOK,
		StatusMessage: "OK",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		IPAddress:     hostIP(),
		Echo:          c.Query("echo"),
		PathEcho:      c.Param("path_echo"),
	})
}

func hostIP() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}
	addrs, err := net.LookupHost(hostname)
	if err != nil || len(addrs) == 0 {
		return ""
	}
	return addrs[0]
}
