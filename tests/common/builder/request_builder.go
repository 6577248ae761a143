//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/request"
	"shareit/internal/usecase/queries"
)

type ItemRequestBuilder struct {
	ID          int64
	RequesterID int64
	Description string
	Created     time.Time
}

func NewItemRequestBuilder(created time.Time) *ItemRequestBuilder {
	return &ItemRequestBuilder{
		ID:          1,
		RequesterID: 1,
		Description: "Need a ladder for the weekend",
		Created:     created,
	}
}

func (b *ItemRequestBuilder) BuildStored() *request.ItemRequest {
	return request.ReconstructItemRequest(b.ID, b.RequesterID, b.Description, b.Created)
}

func (b *ItemRequestBuilder) BuildView(items ...queries.ItemView) *queries.ItemRequestView {
	if items == nil {
		items = []queries.ItemView{}
	}
	return &queries.ItemRequestView{
		ID:          b.ID,
		Description: b.Description,
		RequesterID: b.RequesterID,
		Created:     b.Created,
		Items:       items,
	}
}

func (b *ItemRequestBuilder) WithID(id int64) *ItemRequestBuilder {
	b.ID = id
	return b
}

func (b *ItemRequestBuilder) WithRequester(requesterID int64) *ItemRequestBuilder {
	b.RequesterID = requesterID
	return b
}

func (b *ItemRequestBuilder) WithDescription(description string) *ItemRequestBuilder {
	b.Description = description
	return b
}
