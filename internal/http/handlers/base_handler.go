// README: Base handler utilities (JSON helpers, error mapping, id parsing).
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideshare/internal/http/middleware"
	"rideshare/internal/modules/dispatch"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDispatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dispatch.ErrInvalidArgument), errors.Is(err, dispatch.ErrDataFormat):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, dispatch.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, dispatch.ErrNoAvailableDriver),
		errors.Is(err, dispatch.ErrTripCompleted),
		errors.Is(err, dispatch.ErrLockBusy):
		writeError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("[HTTP] request_id=%s path=%s err=%v", middleware.GetRequestID(c), c.Request.URL.Path, err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// pathID parses the :id route parameter. Non-numeric values are rejected here;
// non-positive ones are left to the service so they map to invalid-argument.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}
