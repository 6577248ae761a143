package response

import (
	"shareit/internal/handler/dto"
	"shareit/internal/usecase/queries"
)

// RequestItemResponse is an item offered in answer to a request.
type RequestItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId"`
}

type ItemRequestResponse struct {
	ID          int64                  `json:"id"`
	Description string                 `json:"description"`
	RequesterID int64                  `json:"requesterId"`
	Created     dto.LocalDateTime      `json:"created"`
	Items       []*RequestItemResponse `json:"items"`
}

func FromItemRequestView(v *queries.ItemRequestView) *ItemRequestResponse {
	items := make([]*RequestItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = &RequestItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			OwnerID:     it.OwnerID,
			RequestID:   it.RequestID,
		}
	}
	return &ItemRequestResponse{
		ID:          v.ID,
		Description: v.Description,
		RequesterID: v.RequesterID,
		Created:     dto.NewLocalDateTime(v.Created),
		Items:       items,
	}
}

func FromItemRequestList(views []*queries.ItemRequestView) []*ItemRequestResponse {
	res := make([]*ItemRequestResponse, len(views))
	for i, v := range views {
		res[i] = FromItemRequestView(v)
	}
	return res
}
