package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mukundrex/flight-mcp-server/internal/service/reference"
)

type ReferenceHandler struct {
	service reference.ReferenceUseCase
}

func NewReferenceHandler(service reference.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

func (h *ReferenceHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", h.searchAirports)
	router.GET("/airports/:code", h.airport)
	router.GET("/airlines/:code", h.airline)
}

func (h *ReferenceHandler) searchAirports(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
		return
	}
	c.JSON(http.StatusOK, h.service.SearchAirports(c.Request.Context(), keyword))
}

func (h *ReferenceHandler) airport(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	airport, ok := h.service.Airport(c.Request.Context(), code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Airport not found: " + code})
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *ReferenceHandler) airline(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	airline, ok := h.service.Airline(c.Request.Context(), code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Airline not found: " + code})
		return
	}
	c.JSON(http.StatusOK, airline)
}
