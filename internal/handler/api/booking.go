package api

import (
	"context"
	"net/http"
	"strconv"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds   commands.BookingCommands
	q      queries.BookingQueries
	clock  clock.Clock
	paging config.PagingConfig
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, clk clock.Clock, paging config.PagingConfig) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, clock: clk, paging: paging}
}

// @Summary Create booking
// @Description Books an available item for a future window. The booking starts WAITING.
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param request body reqdto.CreateBookingRequest true "Booking window"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	bookerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(h.clock.Now())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), cmd, bookerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, bookerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Approve or reject booking
// @Description Only the item owner may decide, and only once
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param id path int true "Booking ID"
// @Param approved query bool true "true approves, false rejects"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [patch]
func (h *BookingHandler) Decide(c *gin.Context) {
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
	approve, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		httperr.Abort(c, errs.Wrapf(errInvalidParam, "approved must be true or false, got %q", c.Query("approved")))
		return
	}
	if err = h.cmds.Decide(c.Request.Context(), id, actorID, approve); err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, actorID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Visible to the booker and to the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED (default ALL)"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 10)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	h.list(c, h.q.ListForBooker)
}

// @Summary List bookings of own items
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED (default ALL)"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 10)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/owner [get]
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, h.q.ListForOwner)
}

type bookingLister func(ctx context.Context, userID int64, state string, page shared.Page) ([]*queries.BookingView, error)

func (h *BookingHandler) list(c *gin.Context, fetch bookingLister) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	page, err := pageFrom(c, h.paging)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := fetch(c.Request.Context(), userID, c.DefaultQuery("state", "ALL"), page)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(views))
}
