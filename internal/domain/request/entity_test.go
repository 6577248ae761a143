//go:build unit

package request_test

import (
	"strings"
	"testing"
	"time"

	"shareit/internal/domain/request"
	"shareit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemRequest(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	r, err := request.NewItemRequest(3, "  Need a tent  ", now)
	require.NoError(t, err)
	assert.Equal(t, "Need a tent", r.Description())
	assert.Equal(t, int64(3), r.RequesterID())
	assert.Equal(t, now, r.Created())

	_, err = request.NewItemRequest(3, " ", now)
	require.ErrorIs(t, err, request.ErrEmptyDescription)

	_, err = request.NewItemRequest(3, strings.Repeat("x", request.MaxDescriptionLength+1), now)
	require.ErrorIs(t, err, request.ErrDescriptionTooLong)
	assert.Equal(t, errs.ErrBadRequest, errs.KindOf(err))

	r, err = request.NewItemRequest(3, strings.Repeat("x", request.MaxDescriptionLength), now)
	require.NoError(t, err)
	assert.Len(t, r.Description(), request.MaxDescriptionLength)
}
