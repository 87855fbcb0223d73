package v1

import (
	"net/http"

	"go-gfg-api/internal/domain"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarUC domain.CalendarUsecase
}

func NewCalendarHandler(r *gin.RouterGroup, calendarUC domain.CalendarUsecase) {
	handler := &CalendarHandler{calendarUC: calendarUC}
	r.GET("/:username/calendar", handler.Get)
}

// Get godoc
// @Summary      Fetch a user's submission calendar
// @Description  Returns the yearwise submission heatmap for a user
// @Tags         calendar
// @Produce      json
// @Param        username  path   string  true   "GeeksforGeeks handle"
// @Param        year      query  int     false  "Target year, 2000..current (defaults to current)"
// @Success      200  {object}  domain.CalendarSummary
// @Failure      400  {object}  response.ErrorBody
// @Failure      429  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Failure      504  {object}  response.ErrorBody
// @Router       /{username}/calendar [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	username, ok := bindUsername(c)
	if !ok {
		return
	}
	year, ok := bindYear(c)
	if !ok {
		return
	}

	summary, err := h.calendarUC.Fetch(c.Request.Context(), username, year)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}

	c.JSON(http.StatusOK, summary)
}
