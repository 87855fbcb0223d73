package v1

import (
	"net/http"

	"go-gfg-api/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContestHandler struct {
	contestUC domain.ContestUsecase
}

func NewContestHandler(r *gin.RouterGroup, contestUC domain.ContestUsecase) {
	handler := &ContestHandler{contestUC: contestUC}
	r.GET("/:username/contest", handler.Get)
}

// Get godoc
// @Summary      Fetch a user's contest standing
// @Description  Returns rating, global rank and per-contest history
// @Tags         contest
// @Produce      json
// @Param        username  path   string  true   "GeeksforGeeks handle"
// @Param        year      query  int     false  "Target year, 2000..current (defaults to current)"
// @Success      200  {object}  domain.ContestSummary
// @Failure      400  {object}  response.ErrorBody
// @Failure      429  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Failure      504  {object}  response.ErrorBody
// @Router       /{username}/contest [get]
func (h *ContestHandler) Get(c *gin.Context) {
	username, ok := bindUsername(c)
	if !ok {
		return
	}
	year, ok := bindYear(c)
	if !ok {
		return
	}

	summary, err := h.contestUC.Fetch(c.Request.Context(), username, year)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}

	c.JSON(http.StatusOK, summary)
}
