package handlers

import (
	"net/http"

	"battery-sim/internal/api/models"
	"battery-sim/internal/model"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the static reference tables
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListChemistries handles GET /api/v1/chemistries
func (h *CatalogHandler) ListChemistries(c *gin.Context) {
	c.JSON(http.StatusOK, models.ChemistriesResponse{Chemistries: model.Chemistries()})
}

// ListTaskTypes handles GET /api/v1/tasks/types
func (h *CatalogHandler) ListTaskTypes(c *gin.Context) {
	timeParam := models.ParameterInfo{
		Name:        "time_seconds",
		Type:        "int",
		Description: "Step duration in seconds (>= 1)",
		Default:     1,
	}
	capacity := models.ParameterInfo{
		Name:        "capacity",
		Type:        "float",
		Description: "Capacity limit of the step",
	}
	ccValue := models.ParameterInfo{
		Name:        "cc_cp",
		Type:        "string",
		Description: "Constant current or constant power setpoint",
	}

	c.JSON(http.StatusOK, models.TaskTypesResponse{
		MaxTasks: model.MaxTasks,
		TaskTypes: []models.TaskTypeInfo{
			{
				Name:        string(model.TaskCCCV),
				Description: "Constant-current charge followed by a constant-voltage hold.",
				Parameters: []models.ParameterInfo{
					ccValue,
					{Name: "cv_voltage", Type: "float", Description: "Constant-voltage hold level (V)"},
					{Name: "current", Type: "float", Description: "Charge current (A)"},
					capacity,
					timeParam,
				},
			},
			{
				Name:        string(model.TaskIdle),
				Description: "Rest with no current.",
				Parameters:  []models.ParameterInfo{timeParam},
			},
			{
				Name:        string(model.TaskCCCD),
				Description: "Constant-current discharge down to a cut-off voltage.",
				Parameters: []models.ParameterInfo{
					ccValue,
					{Name: "voltage", Type: "float", Description: "Cut-off voltage (V)"},
					capacity,
					timeParam,
				},
			},
		},
	})
}
