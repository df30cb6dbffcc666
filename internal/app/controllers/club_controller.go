package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/app/services"
	"github.com/yigit/campushub/internal/middleware"
	"github.com/yigit/campushub/internal/pkg/helpers"
)

// ClubController handles clubs and club membership
type ClubController struct {
	clubService services.ClubService
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService) *ClubController {
	return &ClubController{clubService: clubService}
}

// CreateClub creates a club for an organizer. Admin only.
// @Summary Create a club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club"
// @Success 201 {object} dto.APIResponse{data=dto.ClubResponse}
// @Failure 404 {object} dto.ErrorResponse "Organizer not found"
// @Failure 409 {object} dto.ErrorResponse "Name taken"
// @Router /clubs [post]
func (c *ClubController) CreateClub(ctx *gin.Context) {
	var req dto.CreateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	club, err := c.clubService.CreateClub(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(club))
}

// ListClubs lists every club by name
func (c *ClubController) ListClubs(ctx *gin.Context) {
	clubs, err := c.clubService.ListClubs(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(clubs))
}

// GetClub returns one club
func (c *ClubController) GetClub(ctx *gin.Context) {
	clubID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	club, err := c.clubService.GetClub(ctx.Request.Context(), clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club))
}

// JoinClub adds the caller to the club
func (c *ClubController) JoinClub(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	clubID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	membership, err := c.clubService.JoinClub(ctx.Request.Context(), clubID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(membership))
}

// LeaveClub removes the caller from the club
func (c *ClubController) LeaveClub(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	clubID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	membership, err := c.clubService.LeaveClub(ctx.Request.Context(), clubID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(membership))
}
