package handlers

import (
	"net/http"

	"heat-demand/internal/api/models"
	"heat-demand/internal/model"

	"github.com/gin-gonic/gin"
)

// ProfilesHandler serves the builtin usage-profile catalog.
type ProfilesHandler struct{}

func NewProfilesHandler() *ProfilesHandler { return &ProfilesHandler{} }

// List handles GET /api/v1/profiles.
func (h *ProfilesHandler) List(c *gin.Context) {
	catalog := model.BuiltinProfiles()
	out := make([]models.ProfileJSON, 0, len(catalog))
	for _, id := range model.ProfileIDs(catalog) {
		p := catalog[id]
		out = append(out, models.ProfileJSON{
			ID:                   p.ID,
			Name:                 p.Name,
			OccupancyStartH:      p.OccupancyStartH,
			OccupancyEndH:        p.OccupancyEndH,
			AnnualOperatingDays:  p.AnnualOperatingDays,
			MinAirflowM3HM2:      p.MinAirflowM3HM2,
			MaxSetbackDeltaK:     p.MaxSetbackDeltaK,
			HVACDailyHours:       p.HVACDailyHours,
			MetabolicGainWhM2Day: p.MetabolicGainWhM2Day,
			EquipmentGainWhM2Day: p.EquipmentGainWhM2Day,
		})
	}
	c.JSON(http.StatusOK, gin.H{"profiles": out})
}
