package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/app/services"
	"github.com/yigit/campushub/internal/middleware"
	"github.com/yigit/campushub/internal/pkg/helpers"
)

// EventController handles the event catalogue, registrations, announcements and results
type EventController struct {
	registrationService services.RegistrationService
	eventService        services.EventService
	logger              zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(registrationService services.RegistrationService, eventService services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		registrationService: registrationService,
		eventService:        eventService,
		logger:              logger,
	}
}

// CreateEvent creates an event, optionally under a club the caller runs
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid event"
// @Failure 403 {object} dto.ErrorResponse "Not the club's organizer"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), userID, currentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// ListEvents lists every event, soonest first
func (c *EventController) ListEvents(ctx *gin.Context) {
	events, err := c.eventService.ListEvents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEvent returns one event
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// ListRegistrants lists everyone registered for the event. Creator or admin only.
func (c *EventController) ListRegistrants(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	registrants, err := c.eventService.ListRegistrants(ctx.Request.Context(), eventID, userID, currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(registrants))
}

// Register handles individual registration
// @Summary Register for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse}
// @Failure 400 {object} dto.ErrorResponse "Team event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered or event full"
// @Failure 503 {object} dto.ErrorResponse "Transient failure, retry"
// @Router /events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	registration, err := c.registrationService.RegisterIndividual(ctx.Request.Context(), eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(registration))
}

// RegisterTeam handles team registration. The caller is the team leader.
// @Summary Register a team for an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.RegisterTeamRequest true "Team"
// @Success 201 {object} dto.APIResponse{data=dto.TeamRegistrationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid team"
// @Failure 409 {object} dto.ErrorResponse "Member already registered, team name taken or event full"
// @Failure 503 {object} dto.ErrorResponse "Transient failure, retry"
// @Router /events/{id}/teams [post]
func (c *EventController) RegisterTeam(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RegisterTeamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	team, err := c.registrationService.RegisterTeam(ctx.Request.Context(), eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(team))
}

// PostAnnouncement publishes an announcement to the event's participants
func (c *EventController) PostAnnouncement(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	announcement, err := c.eventService.PostAnnouncement(ctx.Request.Context(), eventID, userID, currentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(announcement))
}

// PostResult records the event's winner and runner-up
func (c *EventController) PostResult(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.eventService.PostResult(ctx.Request.Context(), eventID, userID, currentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("eventID", eventID).Int64("winnerID", result.WinnerID).Msg("Event result posted")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}
