package player

import (
	"net/http"
	"strings"

	"github.com/Dev-06-06/cricket-tracker/pkg/responses"
	"github.com/gin-gonic/gin"
)

// PlayerController handles player-related HTTP requests
type PlayerController struct {
	repo PlayerRepository
}

// NewPlayerController creates a new player controller
func NewPlayerController(repo PlayerRepository) *PlayerController {
	return &PlayerController{repo: repo}
}

// CreatePlayerRequest defines the request payload for registering a player
type CreatePlayerRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetPlayers handles listing all registered players
// @Summary List players
// @Tags players
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /players [get]
func (pc *PlayerController) GetPlayers(c *gin.Context) {
	players, err := pc.repo.GetPlayers()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch players")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Players retrieved successfully", players)
}

// CreatePlayer handles registering a new player
// @Summary Register a player
// @Tags players
// @Accept json
// @Produce json
// @Param request body CreatePlayerRequest true "Player name"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /players [post]
func (pc *PlayerController) CreatePlayer(c *gin.Context) {
	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Name is required")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		responses.BadRequest(c, "Name is required")
		return
	}

	p := Player{Name: name}
	if err := pc.repo.CreatePlayer(&p); err != nil {
		responses.InternalServerError(c, "Failed to create player")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Player created successfully", p)
}

// GetPlayerByID handles fetching a single player with career aggregates
// @Summary Get a player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /players/{id} [get]
func (pc *PlayerController) GetPlayerByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		responses.BadRequest(c, "Invalid player ID")
		return
	}

	p, err := pc.repo.GetPlayerByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if p == nil {
		responses.NotFound(c, "Player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player retrieved successfully", p)
}
