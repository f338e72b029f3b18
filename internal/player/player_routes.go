package player

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PlayerRoutes sets up all player-related routes.
func PlayerRoutes(router *gin.RouterGroup, db *gorm.DB) PlayerRepository {
	playerRepo := NewGormPlayerRepository(db)
	playerController := NewPlayerController(playerRepo)

	playerRoutes := router.Group("/players")
	{
		playerRoutes.GET("", playerController.GetPlayers)
		playerRoutes.POST("", playerController.CreatePlayer)
		playerRoutes.GET("/:id", playerController.GetPlayerByID)
	}

	return playerRepo
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
