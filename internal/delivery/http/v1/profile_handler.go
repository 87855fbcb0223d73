package v1

import (
	"net/http"

	"go-gfg-api/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(r *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}
	r.GET("/:username", handler.Get)
}

// Get godoc
// @Summary      Fetch a user's profile
// @Description  Scrapes the public practice page and returns general info plus solved problem stats
// @Tags         profile
// @Produce      json
// @Param        username  path      string  true  "GeeksforGeeks handle"
// @Success      200  {object}  domain.ProfileResult
// @Failure      400  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Failure      429  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Failure      504  {object}  response.ErrorBody
// @Router       /{username} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	username, ok := bindUsername(c)
	if !ok {
		return
	}

	result, err := h.profileUC.Fetch(c.Request.Context(), username)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}

	c.JSON(http.StatusOK, result)
}
