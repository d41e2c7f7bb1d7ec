package handlers

import (
	"net/http"

	"battery-sim/internal/api/models"
	"battery-sim/internal/simulate"

	"github.com/gin-gonic/gin"
)

// CellsOverview handles POST /api/v1/cells/overview
func CellsOverview(c *gin.Context) {
	var req models.OverviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cells, err := simulate.Overview(req.Chemistries, seedSource(req.Seed))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OverviewResponse{Cells: cells})
}
