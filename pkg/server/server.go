// Package server exposes persisted runs over a read-only HTTP API.
package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/store"
)

// Server serves segmentation results saved by previous pipeline runs.
type Server struct {
	store *store.Store
}

func New(st *store.Store) *Server { return &Server{store: st} }

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)
	r.GET("/runs", s.listRuns)
	r.GET("/runs/:id/summary", s.runSummary)
	r.GET("/runs/:id/segments", s.listSegments)
	r.GET("/customers/:id/segment", s.customerSegment)
	return r
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "marketing-analytics"})
}

func (s *Server) listRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	runs, err := s.store.Runs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": runs})
}

func (s *Server) runSummary(c *gin.Context) {
	id := c.Param("id")
	run, err := s.store.GetRun(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tiers, err := s.store.TierCounts(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "tiers": tiers})
}

func (s *Server) listSegments(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.store.GetRun(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page := 1
	pageSize := 50
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := c.Query("pageSize"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 200 {
			pageSize = v
		}
	}

	records, total, err := s.store.SegmentsByRun(id, c.Query("tier"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records, "page": page, "pageSize": pageSize, "total": total})
}

func (s *Server) customerSegment(c *gin.Context) {
	rec, err := s.store.LatestSegmentForCustomer(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"segment": rec})
}
