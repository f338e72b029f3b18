package match

import (
	"net/http"
	"strconv"

	"github.com/Dev-06-06/cricket-tracker/pkg/responses"
	"github.com/gin-gonic/gin"
)

// MatchController handles match-related HTTP requests. Live scoring happens
// over the websocket transport; these endpoints cover setup and read access.
type MatchController struct {
	repo MatchRepository
}

// NewMatchController creates a new match controller
func NewMatchController(repo MatchRepository) *MatchController {
	return &MatchController{repo: repo}
}

// GetMatchByID handles fetching a match document
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /match/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	m, err2 := mc.repo.GetMatchByID(uint(id))
	if err2 != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Match retrieved successfully", m)
}
