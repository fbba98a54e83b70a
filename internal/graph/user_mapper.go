package graph

import (
	"strconv"
	"time"

	"rz-parfum-be/internal/graph/model"
	"rz-parfum-be/internal/user"
)

const timeLayout = time.RFC3339

func toGraphQLUser(u user.User) *model.User {
	return &model.User{
		ID:        strconv.FormatUint(uint64(u.ID), 10),
		Email:     u.Email,
		Role:      model.Role(u.Role),
		CreatedAt: u.CreatedAt.Format(timeLayout),
	}
}
