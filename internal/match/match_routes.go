package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB) MatchRepository {
	matchRepo := NewGormMatchRepository(db)
	matchController := NewMatchController(matchRepo)

	matchRoutes := router.Group("/match")
	{
		matchRoutes.GET("/:id", matchController.GetMatchByID)
	}

	return matchRepo
}
