package server

import (
	"net/http"

	"stock-dashboard/src/models"

	"github.com/gin-gonic/gin"
)

func (s *DashboardServer) getHealth(c *gin.Context) {
	window := s.Config.DateWindow()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"provider":     s.MarketData.Name(),
		"window_start": window.Start.Format(models.DateLayout),
		"window_end":   window.End.Format(models.DateLayout),
		"benchmark":    s.Config.Benchmark.Symbol,
	})
}
