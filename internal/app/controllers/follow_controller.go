package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/app/services"
	"github.com/yigit/campushub/internal/middleware"
	"github.com/yigit/campushub/internal/pkg/helpers"
)

// FollowController handles the follow graph
type FollowController struct {
	followService services.FollowService
}

// NewFollowController creates a new FollowController
func NewFollowController(followService services.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

// Follow makes the caller follow the user in the path
func (c *FollowController) Follow(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	targetID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.followService.Follow(ctx.Request.Context(), userID, targetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// Unfollow removes the caller's follow edge
func (c *FollowController) Unfollow(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	targetID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.followService.Unfollow(ctx.Request.Context(), userID, targetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
