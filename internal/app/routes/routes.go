package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campushub/internal/app/controllers"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/middleware"
	"github.com/yigit/campushub/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	notificationController *controllers.NotificationController,
	postController *controllers.PostController,
	followController *controllers.FollowController,
	eventController *controllers.EventController,
	clubController *controllers.ClubController,
	healthController *controllers.HealthController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Realtime gateway. Clients join their user room with a join frame.
	router.GET("/ws", wsHandler.HandleConnection)

	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Health)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.GET("/unread-count", notificationController.UnreadCount)
		notifications.PATCH("/read-all", notificationController.MarkAllRead)
		notifications.PATCH("/:id/read", notificationController.MarkOneRead)
	}

	posts := authenticated.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.GET("/feed", postController.GetFeed)
		posts.GET("/:id", postController.GetPost)
		posts.POST("/:id/like", postController.LikePost)
		posts.DELETE("/:id/like", postController.UnlikePost)
		posts.POST("/:id/like/toggle", postController.ToggleLike)
		posts.POST("/:id/comments", postController.AddComment)
	}

	users := authenticated.Group("/users")
	{
		users.POST("/:id/follow", followController.Follow)
		users.DELETE("/:id/follow", followController.Unfollow)
	}

	events := authenticated.Group("/events")
	{
		events.GET("", eventController.ListEvents)
		events.GET("/:id", eventController.GetEvent)
		events.POST("/:id/register", eventController.Register)
		events.POST("/:id/teams", eventController.RegisterTeam)

		// Ownership of the event or its club is checked by the service
		eventsManaged := events.Group("")
		eventsManaged.Use(authMiddleware.RoleRequired(models.RoleOrganizer, models.RoleAdmin))
		{
			eventsManaged.POST("", eventController.CreateEvent)
			eventsManaged.GET("/:id/registrants", eventController.ListRegistrants)
			eventsManaged.POST("/:id/announcements", eventController.PostAnnouncement)
			eventsManaged.POST("/:id/result", eventController.PostResult)
		}
	}

	clubs := authenticated.Group("/clubs")
	{
		clubs.GET("", clubController.ListClubs)
		clubs.GET("/:id", clubController.GetClub)
		clubs.POST("/:id/join", clubController.JoinClub)
		clubs.DELETE("/:id/join", clubController.LeaveClub)
		clubs.POST("", authMiddleware.RoleRequired(models.RoleAdmin), clubController.CreateClub)
	}
}
