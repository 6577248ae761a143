package response

import (
	"shareit/internal/handler/dto"
	"shareit/internal/usecase/queries"
)

type BookerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookedItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64              `json:"id"`
	Start  dto.LocalDateTime  `json:"start"`
	End    dto.LocalDateTime  `json:"end"`
	Status string             `json:"status"`
	Booker BookerResponse     `json:"booker"`
	Item   BookedItemResponse `json:"item"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     v.ID,
		Start:  dto.NewLocalDateTime(v.Start),
		End:    dto.NewLocalDateTime(v.End),
		Status: v.Status,
		Booker: BookerResponse{ID: v.Booker.ID, Name: v.Booker.Name},
		Item:   BookedItemResponse{ID: v.Item.ID, Name: v.Item.Name},
	}
}

func FromBookingList(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}
