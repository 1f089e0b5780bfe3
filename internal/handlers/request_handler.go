package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/safebridge-api/internal/services"
)

type submitRequestBody struct {
	Text     string `json:"text"`
	Urgency  string `json:"urgency"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

type updateStatusBody struct {
	Status string `json:"status"`
}

func (h *Handler) SubmitRequest(c *gin.Context) {
	var body submitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badBody(c, err)
		return
	}

	req, err := h.Requests.Submit(c.Request.Context(), services.SubmitRequestInput{
		Text:     body.Text,
		Urgency:  body.Urgency,
		Type:     body.Type,
		Location: body.Location,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListRequests returns every request, or only those with ?status=<value>.
func (h *Handler) ListRequests(c *gin.Context) {
	reqs, err := h.Requests.List(c.Request.Context(), services.ListFilter{Status: c.Query("status")})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) GetRequest(c *gin.Context) {
	req, err := h.Requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) UpdateRequestStatus(c *gin.Context) {
	var body updateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badBody(c, err)
		return
	}

	req, err := h.Requests.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
