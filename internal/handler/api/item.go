package api

import (
	"net/http"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	cmds     commands.ItemCommands
	comments commands.CommentCommands
	q        queries.ItemQueries
	paging   config.PagingConfig
}

func NewItemHandler(cmds commands.ItemCommands, comments commands.CommentCommands, q queries.ItemQueries, paging config.PagingConfig) *ItemHandler {
	return &ItemHandler{cmds: cmds, comments: comments, q: q, paging: paging}
}

// @Summary Create item
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param request body reqdto.CreateItemRequest true "New item"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), ownerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromItemView(view))
}

// @Summary List own items
// @Description Items of the caller with last/next bookings and comments, ordered by id
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 10)"
// @Success 200 {array} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items [get]
func (h *ItemHandler) ListOwn(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	page, err := pageFrom(c, h.paging)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.q.ListByOwner(c.Request.Context(), ownerID, page)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemList(views))
}

// @Summary Search items
// @Description Case-insensitive match on name or description among available items. Blank text yields an empty list.
// @Tags items
// @Produce json
// @Param text query string false "Search text"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 10)"
// @Success 200 {array} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Router /items/search [get]
func (h *ItemHandler) Search(c *gin.Context) {
	page, err := pageFrom(c, h.paging)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.q.Search(c.Request.Context(), c.Query("text"), page)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemList(views))
}

// @Summary Get item
// @Description Bookings are attached only when the caller owns the item
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param id path int true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, viewerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Update item
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param id path int true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Fields to change"
// @Success 200 {object} resdto.ItemResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [patch]
func (h *ItemHandler) Update(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	var req reqdto.UpdateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err = h.cmds.Update(c.Request.Context(), id, req.ToCommand(), actorID); err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, actorID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Delete item
// @Description Removes the item with its bookings and comments
// @Tags items
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param id path int true "Item ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id, actorID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Comment on item
// @Description Allowed only after a completed, approved booking of the item by the caller
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param id path int true "Item ID"
// @Param request body reqdto.CreateCommentRequest true "Comment"
// @Success 201 {object} resdto.CommentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id}/comment [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	var req reqdto.CreateCommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	id, err := h.comments.Add(c.Request.Context(), itemID, authorID, req.Text)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.GetComment(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCommentView(view))
}
