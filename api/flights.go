package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
	"github.com/mukundrex/flight-mcp-server/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
	now     func() time.Time
}

type searchQuery struct {
	From              string `form:"from" binding:"required"`
	To                string `form:"to" binding:"required"`
	Date              string `form:"date"`
	Adults            int    `form:"adults"`
	IncludeConnecting *bool  `form:"include_connecting"`
}

type rangeQuery struct {
	From              string `form:"from" binding:"required"`
	To                string `form:"to" binding:"required"`
	StartDate         string `form:"start_date" binding:"required"`
	EndDate           string `form:"end_date" binding:"required"`
	StartTime         string `form:"start_time"`
	EndTime           string `form:"end_time"`
	Adults            int    `form:"adults"`
	IncludeConnecting *bool  `form:"include_connecting"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service, now: time.Now}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/search", h.search)
	router.GET("/range", h.searchRange)
}

func (h *FlightHandler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Date == "" {
		q.Date = h.now().UTC().Format("2006-01-02")
	}

	result, err := h.service.Search(c.Request.Context(), flights.SearchInput{
		Origin:      strings.ToUpper(q.From),
		Destination: strings.ToUpper(q.To),
		Date:        q.Date,
		Adults:      q.Adults,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if q.IncludeConnecting != nil && !*q.IncludeConnecting {
		result.Connecting = []domain.FlightConnection{}
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) searchRange(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	window := flights.DepartureWindow{From: q.StartTime, To: q.EndTime}
	if err := window.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.service.SearchRange(c.Request.Context(), flights.RangeInput{
		Origin:      strings.ToUpper(q.From),
		Destination: strings.ToUpper(q.To),
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		Adults:      q.Adults,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	includeConnecting := q.IncludeConnecting == nil || *q.IncludeConnecting
	c.JSON(http.StatusOK, flights.FilterRange(results, window, includeConnecting))
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.WithRequest(RequestID(c), c.FullPath()).Errorw("request failed", "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
