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

type RequestHandler struct {
	cmds   commands.RequestCommands
	q      queries.RequestQueries
	paging config.PagingConfig
}

func NewRequestHandler(cmds commands.RequestCommands, q queries.RequestQueries, paging config.PagingConfig) *RequestHandler {
	return &RequestHandler{cmds: cmds, q: q, paging: paging}
}

// @Summary Create item request
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param request body reqdto.CreateItemRequestRequest true "Wanted item"
// @Success 201 {object} resdto.ItemRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req.Description, requesterID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, requesterID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromItemRequestView(view))
}

// @Summary List own item requests
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 404 {object} httperr.Response
// @Router /requests [get]
func (h *RequestHandler) ListOwn(c *gin.Context) {
	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	views, err := h.q.ListOwn(c.Request.Context(), viewerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemRequestList(views))
}

// @Summary List other users' item requests
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 10)"
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests/all [get]
func (h *RequestHandler) ListOthers(c *gin.Context) {
	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	page, err := pageFrom(c, h.paging)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.q.ListOthers(c.Request.Context(), viewerID, page)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemRequestList(views))
}

// @Summary Get item request
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param id path int true "Request ID"
// @Success 200 {object} resdto.ItemRequestResponse
// @Failure 404 {object} httperr.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, resdto.FromItemRequestView(view))
}
