package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/community-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	person := h.getPersonFromRequest(c)

	var input dto.CreateCommentDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), h.getSiteIDFromRequest(c), person.ID, input)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, createdComment)
}

func (h *Handler) commentsGetByID(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentID")
	if !ok {
		return
	}

	comment, err := h.services.Comment.FindByID(c.Request.Context(), h.getSiteIDFromRequest(c), commentID)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *Handler) commentsEdit(c *gin.Context) {
	person := h.getPersonFromRequest(c)

	commentID, ok := parseIDParam(c, "commentID")
	if !ok {
		return
	}

	var input dto.EditCommentDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedComment, err := h.services.Comment.Update(c.Request.Context(), h.getSiteIDFromRequest(c), commentID, person.ID, input)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, updatedComment)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	person := h.getPersonFromRequest(c)

	commentID, ok := parseIDParam(c, "commentID")
	if !ok {
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), h.getSiteIDFromRequest(c), commentID, person.ID); err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return 0, false
	}
	return id, true
}
