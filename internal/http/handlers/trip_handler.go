// README: Trip handlers for requesting, completing and fetching trips.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/modules/dispatch"
	"rideshare/internal/types"
)

type TripHandler struct {
	dispatch *dispatch.Service
}

func NewTripHandler(svc *dispatch.Service) *TripHandler {
	return &TripHandler{dispatch: svc}
}

type requestTripReq struct {
	PassengerID int64 `json:"passenger_id"`
}

type completeTripReq struct {
	Cost   string `json:"cost" binding:"required"`
	Rating int    `json:"rating" binding:"required"`
}

func (h *TripHandler) Request(c *gin.Context) {
	var req requestTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	trip, err := h.dispatch.RequestTrip(c.Request.Context(), req.PassengerID)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	h.respondTrip(c, http.StatusCreated, trip.ID)
}

func (h *TripHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req completeTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "cost and rating are required")
		return
	}
	cost, err := types.ParseMoney(req.Cost)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	trip, err := h.dispatch.CompleteTrip(c.Request.Context(), dispatch.CompleteCommand{
		TripID: id,
		Cost:   cost,
		Rating: req.Rating,
	})
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	h.respondTrip(c, http.StatusOK, trip.ID)
}

func (h *TripHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondTrip(c, http.StatusOK, id)
}

func (h *TripHandler) respondTrip(c *gin.Context, status int, id int64) {
	t, err := h.dispatch.DescribeTrip(id)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, status, t)
}
