package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aebonlee/stepup-cloud/backend/services"
	"github.com/aebonlee/stepup-cloud/backend/utils"
)

type RecordsController struct {
	Records *services.RecordService
}

func NewRecordsController(records *services.RecordService) *RecordsController {
	return &RecordsController{Records: records}
}

// createdResponse is the body of every successful record insert.
type createdResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// CreateStudyRecord godoc
// @Summary Save a study session
// @Tags study
// @Accept json
// @Produce json
// @Param request body services.StudyInput true "Study session"
// @Success 201 {object} createdResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /study-records [post]
func (rc *RecordsController) CreateStudyRecord(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	var input services.StudyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	rec, err := rc.Records.CreateStudy(c.UserContext(), identity.UserID, input)
	if err != nil {
		return err
	}
	return utils.Created(c, createdResponse{ID: rec.ID, Message: "Study record saved"})
}

// GetStudyRecords godoc
// @Summary List study sessions, newest first
// @Tags study
// @Produce json
// @Success 200 {array} models.StudyRecord
// @Security ApiKeyAuth
// @Router /study-records [get]
func (rc *RecordsController) GetStudyRecords(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	recs, err := rc.Records.ListStudy(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(recs)
}

func (rc *RecordsController) CreateReadingRecord(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	var input services.ReadingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	rec, err := rc.Records.CreateReading(c.UserContext(), identity.UserID, input)
	if err != nil {
		return err
	}
	return utils.Created(c, createdResponse{ID: rec.ID, Message: "Reading record saved"})
}

func (rc *RecordsController) GetReadingRecords(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	recs, err := rc.Records.ListReading(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(recs)
}

// CreateAwardActivity godoc
// @Summary Save an award or an activity
// @Description type is "award" or "activity"; hours are ignored for awards
// @Tags activities
// @Accept json
// @Produce json
// @Param request body services.AwardActivityInput true "Award or activity"
// @Success 201 {object} createdResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /awards-activities [post]
func (rc *RecordsController) CreateAwardActivity(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	var input services.AwardActivityInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	rec, err := rc.Records.CreateAwardActivity(c.UserContext(), identity.UserID, input)
	if err != nil {
		return err
	}
	return utils.Created(c, createdResponse{ID: rec.ID, Message: "Award/activity record saved"})
}

func (rc *RecordsController) GetAwardActivities(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	recs, err := rc.Records.ListAwardActivities(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(recs)
}
