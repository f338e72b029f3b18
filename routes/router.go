package routes

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Dev-06-06/cricket-tracker/config"
	"github.com/Dev-06-06/cricket-tracker/internal/live"
	"github.com/Dev-06-06/cricket-tracker/internal/match"
	"github.com/Dev-06-06/cricket-tracker/internal/player"
	"github.com/Dev-06-06/cricket-tracker/internal/scoring"
	"github.com/Dev-06-06/cricket-tracker/pkg/responses"
)

// SetupRoutes assembles the HTTP router and the live scoring engine.
func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>Cricket Tracker</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>Cricket Tracker 🏏</h1>
					<p>Live scoring over <code>/ws</code>, REST under <code>/api</code>.</p>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	playerRepo := player.PlayerRoutes(api, db)
	matchRepo := match.MatchRoutes(api, db)

	// Live scoring: websocket hub + delivery-processing engine
	hub := live.NewHub()
	engine := scoring.NewEngine(matchRepo, playerRepo, hub, appConfig.Scoring.DefaultTotalOvers)
	live.LiveRoutes(r, live.NewDispatcher(engine, hub), hub)

	// Match setup is also reachable over REST for clients without a socket.
	api.POST("/match", createMatchHandler(engine))

	return r
}

// createMatchHandler creates a match through the scoring engine so REST and
// socket creation share roster seeding and validation.
// @Summary Create a match
// @Tags matches
// @Accept json
// @Produce json
// @Param request body scoring.CreateMatchInput true "Match setup"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /match [post]
func createMatchHandler(engine *scoring.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in scoring.CreateMatchInput
		if err := c.ShouldBindJSON(&in); err != nil {
			responses.BadRequest(c, "Invalid match payload")
			return
		}

		m, err := engine.CreateMatch(in)
		if err != nil {
			var vErr *scoring.ValidationError
			if errors.As(err, &vErr) {
				responses.BadRequest(c, vErr.Reason)
				return
			}
			responses.InternalServerError(c, "Failed to create match")
			return
		}

		responses.SendSuccess(c, http.StatusCreated, "Match created successfully", gin.H{"matchId": m.ID, "match": m})
	}
}
