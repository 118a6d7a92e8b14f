package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/akazakov/shoplite-backend/api/middleware"
	"github.com/akazakov/shoplite-backend/internal/orders"
	"github.com/akazakov/shoplite-backend/pkg/enums"
	pkgerrors "github.com/akazakov/shoplite-backend/pkg/errors"
)

func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func orderActor(r *http.Request) (orders.Actor, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return orders.Actor{}, err
	}
	return orders.Actor{
		UserID:  userID,
		IsAdmin: middleware.HasRoleInContext(r.Context(), enums.RoleAdmin.String()),
	}, nil
}
