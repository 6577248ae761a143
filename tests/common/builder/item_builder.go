//go:build unit || e2e

package builder

import (
	"shareit/internal/domain/item"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type ItemBuilder struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          1,
		OwnerID:     1,
		Name:        "Drill",
		Description: "Cordless drill with two batteries",
		Available:   true,
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

func (b *ItemBuilder) BuildDomain() (*item.Item, error) {
	return item.NewItem(b.OwnerID, b.Name, b.Description, b.Available, b.RequestID)
}

func (b *ItemBuilder) BuildStored() *item.Item {
	return item.ReconstructItem(b.ID, b.OwnerID, b.Name, b.Description, b.Available, b.RequestID)
}

func (b *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	available := b.Available
	return reqdto.CreateItemRequest{
		Name:        b.Name,
		Description: b.Description,
		Available:   &available,
		RequestID:   b.RequestID,
	}
}

func (b *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		OwnerID:     b.OwnerID,
		RequestID:   b.RequestID,
		Comments:    []queries.CommentView{},
	}
}

func (b *ItemBuilder) WithID(id int64) *ItemBuilder {
	b.ID = id
	return b
}

func (b *ItemBuilder) WithOwner(ownerID int64) *ItemBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.Name = name
	return b
}

func (b *ItemBuilder) WithDescription(description string) *ItemBuilder {
	b.Description = description
	return b
}

func (b *ItemBuilder) WithRequest(requestID int64) *ItemBuilder {
	b.RequestID = &requestID
	return b
}

func (b *ItemBuilder) AsUnavailable() *ItemBuilder {
	b.Available = false
	return b
}
