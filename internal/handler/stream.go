package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/community-service/internal/dto"
	"github.com/BloggingApp/community-service/internal/model"
	"github.com/gin-gonic/gin"
)

var streamableTypes = map[string]struct{}{
	string(model.ParentVerse):  {},
	string(model.ParentRecipe): {},
	string(model.ParentNote):   {},
	model.StreamableAlbum:      {},
}

func (h *Handler) streamGet(c *gin.Context) {
	streamableType := strings.TrimSpace(c.Param("type"))
	if _, ok := streamableTypes[streamableType]; !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidStream.Error()))
		return
	}

	streamableID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	target := model.StreamTarget{
		Type: streamableType,
		ID:   streamableID,
	}
	items, err := h.services.Stream.FindStreamItems(c.Request.Context(), h.getSiteIDFromRequest(c), target)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewStreamResponse(target, items))
}
