package testutil

import (
	"net/http"

	"lendfold/internal/access"
	"lendfold/internal/platform/middleware"
)

// WithActor injects an authenticated actor into the request context,
// simulating what the identity middleware does for a verified token.
func WithActor(req *http.Request, actor access.Actor) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

// Customer returns a customer actor with the given id.
func Customer(id string) access.Actor {
	return access.Actor{ID: id, Role: access.RoleCustomer}
}

// Employee returns an employee actor with the given id.
func Employee(id string) access.Actor {
	return access.Actor{ID: id, Role: access.RoleEmployee}
}

// Admin returns an admin actor with the given id.
func Admin(id string) access.Actor {
	return access.Actor{ID: id, Role: access.RoleAdmin}
}
