//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/handler/api"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"
	"shareit/tests/common/builder"
	"shareit/tests/common/httptest"
	"shareit/tests/common/testutil"
	commandsmock "shareit/tests/mock/commands"
	queriesmock "shareit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	clock        *clock.MockClock
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2030, 1, 1, 12, 0, 0, 0, time.Local))
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, s.clock,
		config.PagingConfig{DefaultSize: 10, MaxSize: 100})

	caller := middleware.NewIdentityMiddleware(nil).RequireUser()
	s.router.POST("/bookings", caller, s.handler.Create)
	s.router.PATCH("/bookings/:id", caller, s.handler.Decide)
	s.router.GET("/bookings/:id", caller, s.handler.Get)
	s.router.GET("/bookings", caller, s.handler.ListForBooker)
	s.router.GET("/bookings/owner", caller, s.handler.ListForOwner)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	now := s.clock.Now()

	b := builder.NewBookingBuilder(now).WithID(21).WithItem(1, 1).WithBooker(2)
	reqBody := b.BuildCreateRequestDTO()

	s.Run("success: 201 with WAITING status", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), commands.CreateBookingRequest{ItemID: 1, Start: b.Start, End: b.End}, int64(2)).
			Return(int64(21), nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), int64(21), int64(2)).Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, 2)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		s.JSONEq(`{
			"id": 21, "start": "2030-01-01T13:00:00", "end": "2030-01-01T14:00:00", "status": "WAITING",
			"booker": {"id": 2, "name": "Booker"}, "item": {"id": 1, "name": "Drill"}
		}`, rec.Body.String())
	})

	s.Run("success: start exactly now is accepted", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), int64(2)).Return(int64(22), nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), int64(22), int64(2)).Return(b.BuildView(), nil).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("start", now.Format("2006-01-02T15:04:05")))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, 2)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 on request validation", func() {
		past := now.Add(-time.Hour).Format("2006-01-02T15:04:05")
		cases := []testCaseUser{
			{name: "missing field: itemId", mutate: testutil.Field("itemId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: start", mutate: testutil.Field("start", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: end", mutate: testutil.Field("end", nil), expectCode: http.StatusBadRequest},
			{name: "start in the past", mutate: testutil.Field("start", past), expectCode: http.StatusBadRequest},
			{name: "end in the past", mutate: testutil.Field("end", past), expectCode: http.StatusBadRequest},
			{name: "unparseable start", mutate: testutil.Field("start", "tomorrow"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, 2)
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, httperr.CodeBadRequest)
			})
		}
	})

	s.Run("error: maps booking engine errors", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{name: "item unavailable", commandsError: booking.ErrItemUnavailable, expectedStatus: http.StatusBadRequest, expectedCode: httperr.CodeBadRequest},
			{name: "booking own item", commandsError: booking.ErrOwnItem, expectedStatus: http.StatusNotFound, expectedCode: httperr.CodeNotFound},
			{name: "end not after start", commandsError: booking.ErrInvalidTimeSlot, expectedStatus: http.StatusBadRequest, expectedCode: httperr.CodeBadRequest},
			{name: "unknown item", commandsError: shared.ErrItemNotFound, expectedStatus: http.StatusNotFound, expectedCode: httperr.CodeNotFound},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), int64(2)).Return(int64(0), tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, 2)
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

// ================================================================================
// TestDecide
// ================================================================================

func (s *BookingHandlerTestSuite) TestDecide() {
	b := builder.NewBookingBuilder(s.clock.Now()).WithID(3)

	s.Run("success: approve", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), int64(3), int64(1), true).Return(nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), int64(3), int64(1)).
			Return(b.WithStatus(booking.StatusApproved).BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/3?approved=true", nil, 1)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("APPROVED", body.Status)
	})

	s.Run("success: reject", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), int64(3), int64(1), false).Return(nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), int64(3), int64(1)).
			Return(b.WithStatus(booking.StatusRejected).BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/3?approved=false", nil, 1)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("REJECTED", body.Status)
	})

	s.Run("error: 400 when approved is missing or malformed", func() {
		for _, q := range []string{"", "?approved=maybe"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/3"+q, nil, 1)
			httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeBadRequest)
		}
	})

	s.Run("error: 404 for someone other than the owner", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), int64(3), int64(2), true).Return(booking.ErrNotItemOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/3?approved=true", nil, 2)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})

	s.Run("error: 400 when already decided", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), int64(3), int64(1), false).Return(booking.ErrAlreadyDecided).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/3?approved=false", nil, 1)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeBadRequest)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	page := shared.Page{From: 0, Size: 10}

	s.Run("success: booker list defaults to ALL", func() {
		s.mockQueries.EXPECT().ListForBooker(gomock.Any(), int64(2), "ALL", page).
			Return([]*queries.BookingView{builder.NewBookingBuilder(s.clock.Now()).BuildView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, 2)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: owner list passes state and paging through", func() {
		s.mockQueries.EXPECT().ListForOwner(gomock.Any(), int64(1), "future", shared.Page{From: 2, Size: 3}).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner?state=future&from=2&size=3", nil, 1)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: unknown state is reported verbatim", func() {
		unsupported := errs.Mark(errs.Newf("Unknown state: %s", "UNSUPPORTED_STATUS"), errs.ErrUnsupportedState)
		s.mockQueries.EXPECT().ListForBooker(gomock.Any(), int64(2), "UNSUPPORTED_STATUS", page).
			Return(nil, unsupported).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=UNSUPPORTED_STATUS", nil, 2)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeUnsupportedState)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown state: UNSUPPORTED_STATUS")
	})

	s.Run("error: 404 for unknown user", func() {
		s.mockQueries.EXPECT().ListForOwner(gomock.Any(), int64(9), "ALL", page).Return(nil, shared.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner", nil, 9)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("error: 404 for an unrelated user", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), int64(3), int64(5)).Return(nil, shared.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/3", nil, 5)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}
