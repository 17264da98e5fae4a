package httphandlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *HTTPHandler) GetWorkflows(ctx *gin.Context) {
	list, err := h.workflows.List(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	data := make([]*WorkflowDTO, len(list))
	for i, wf := range list {
		data[i] = mapWorkflow(wf)
	}
	ctx.JSON(http.StatusOK, data)
}

func (h *HTTPHandler) GetWorkflow(ctx *gin.Context) {
	id, err := parseWorkflowID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	wf, err := h.workflows.Get(ctx, id)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapWorkflow(wf))
}

func (h *HTTPHandler) RetryWorkflow(ctx *gin.Context) {
	id, err := parseWorkflowID(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	wf, err := h.workflows.RetryDetails(ctx, id)
	if err != nil {
		res := ErrorResponse{Error: err.Error()}
		if wf != nil {
			res.Workflow = mapWorkflow(wf)
		}
		ctx.JSON(statusFor(err), res)
		return
	}
	ctx.JSON(http.StatusOK, mapWorkflow(wf))
}

func (h *HTTPHandler) GetEvents(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 0 {
			h.writeError(ctx, badRequest(fmt.Errorf("invalid limit %q", raw)))
			return
		}
		limit = l
	}
	events := h.feed.Recent(limit)
	data := make([]EventDTO, len(events))
	for i, ev := range events {
		data[i] = mapEvent(ev)
	}
	ctx.JSON(http.StatusOK, data)
}

func parseWorkflowID(ctx *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, badRequest(err)
	}
	return id, nil
}
