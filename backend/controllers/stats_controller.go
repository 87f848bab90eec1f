package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aebonlee/stepup-cloud/backend/services"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GetStudyStats godoc
// @Summary Study statistics
// @Description Minutes per day (last 30 days with records), per subject and per ISO week
// @Tags stats
// @Produce json
// @Success 200 {object} models.StudyStats
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stats/study [get]
func (sc *StatsController) GetStudyStats(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := sc.Stats.Study(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetReadingStats godoc
// @Summary Reading statistics
// @Description Books per month and per category, plus the number of written reviews
// @Tags stats
// @Produce json
// @Success 200 {object} models.ReadingStats
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stats/reading [get]
func (sc *StatsController) GetReadingStats(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := sc.Stats.Reading(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (sc *StatsController) GetOverview(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	overview, err := sc.Stats.Overview(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(overview)
}
