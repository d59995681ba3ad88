// README: Passenger lookup handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/modules/dispatch"
)

type PassengerHandler struct {
	dispatch *dispatch.Service
}

func NewPassengerHandler(svc *dispatch.Service) *PassengerHandler {
	return &PassengerHandler{dispatch: svc}
}

func (h *PassengerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.dispatch.DescribePassenger(id)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}
