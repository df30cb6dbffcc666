// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/middleware"
)

// currentUser returns the authenticated user id, answering 401 when it is missing
func currentUser(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("User information not found")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// currentRole returns the authenticated user's role, or STUDENT when none was set
func currentRole(ctx *gin.Context) models.RoleType {
	role, ok := middleware.GetRole(ctx)
	if !ok {
		return models.RoleStudent
	}
	return role
}
