package response

import (
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromUserView(v *queries.UserView) (*UserResponse, error) {
	var res UserResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "map user view")
	}
	return &res, nil
}

func FromUserList(views []*queries.UserView) ([]*UserResponse, error) {
	res := make([]*UserResponse, len(views))
	for i, v := range views {
		r, err := FromUserView(v)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}
