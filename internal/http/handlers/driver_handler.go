// README: Driver handlers for lookup and next-available selection.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/modules/dispatch"
)

type DriverHandler struct {
	dispatch *dispatch.Service
}

func NewDriverHandler(svc *dispatch.Service) *DriverHandler {
	return &DriverHandler{dispatch: svc}
}

func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.dispatch.DescribeDriver(id)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

// Available previews the driver the next trip request would be assigned to.
func (h *DriverHandler) Available(c *gin.Context) {
	d, err := h.dispatch.DescribeNextDriver(c.Request.Context())
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}
