package api

import (
	"net/http"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	cmds commands.UserCommands
	q    queries.UserQueries
}

func NewUserHandler(cmds commands.UserCommands, q queries.UserQueries) *UserHandler {
	return &UserHandler{cmds: cmds, q: q}
}

// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body reqdto.CreateUserRequest true "New user"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req reqdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondUser(c, http.StatusCreated, view)
}

// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} resdto.UserResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromUserList(views)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondUser(c, http.StatusOK, view)
}

// @Summary Update user
// @Description Replace name and/or email. Blank values are ignored.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body reqdto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	var req reqdto.UpdateUserRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err = h.cmds.Update(c.Request.Context(), id, req.ToCommand()); err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondUser(c, http.StatusOK, view)
}

// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondUser(c *gin.Context, status int, view *queries.UserView) {
	res, err := resdto.FromUserView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, res)
}
