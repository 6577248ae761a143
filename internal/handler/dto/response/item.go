package response

import (
	"shareit/internal/handler/dto"
	"shareit/internal/usecase/queries"
)

type BookingShortResponse struct {
	ID       int64             `json:"id"`
	BookerID int64             `json:"bookerId"`
	Start    dto.LocalDateTime `json:"start"`
	End      dto.LocalDateTime `json:"end"`
}

type CommentResponse struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorName string            `json:"authorName"`
	CreatedAt  dto.LocalDateTime `json:"created"`
}

type ItemResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Available   bool                  `json:"available"`
	OwnerID     int64                 `json:"ownerId"`
	RequestID   *int64                `json:"requestId"`
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []*CommentResponse    `json:"comments"`
}

func FromCommentView(v *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         v.ID,
		Text:       v.Text,
		AuthorName: v.AuthorName,
		CreatedAt:  dto.NewLocalDateTime(v.Created),
	}
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	comments := make([]*CommentResponse, len(v.Comments))
	for i := range v.Comments {
		comments[i] = FromCommentView(&v.Comments[i])
	}
	return &ItemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		OwnerID:     v.OwnerID,
		RequestID:   v.RequestID,
		LastBooking: fromBookingShort(v.LastBooking),
		NextBooking: fromBookingShort(v.NextBooking),
		Comments:    comments,
	}
}

func FromItemList(views []*queries.ItemView) []*ItemResponse {
	res := make([]*ItemResponse, len(views))
	for i, v := range views {
		res[i] = FromItemView(v)
	}
	return res
}

func fromBookingShort(b *queries.BookingShort) *BookingShortResponse {
	if b == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    dto.NewLocalDateTime(b.Start),
		End:      dto.NewLocalDateTime(b.End),
	}
}
