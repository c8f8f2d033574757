package controller

import (
	"ctchen222/Criss-Cross/internal/api/response"
	"ctchen222/Criss-Cross/internal/game"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GameDirectory is the read side of the game registry.
type GameDirectory interface {
	Games() []*game.Game
	Get(gameID string) (*game.Game, bool)
}

// GameController serves read-only views of the live games.
type GameController struct {
	games GameDirectory
}

func NewGameController(games GameDirectory) *GameController {
	return &GameController{
		games: games,
	}
}

// List handles GET /api/games.
func (gc *GameController) List(c *gin.Context) {
	games := gc.games.Games()
	summaries := make([]game.Summary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, g.Summary())
	}
	response.SuccessResponseList(c, summaries)
}

// Get handles GET /api/games/:id.
func (gc *GameController) Get(c *gin.Context) {
	g, ok := gc.games.Get(c.Param("id"))
	if !ok {
		response.ErrorResponse(c, http.StatusNotFound, "game not found")
		return
	}
	response.SuccessResponse(c, g.Summary())
}
