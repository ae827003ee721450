package api

import (
	"net/http"

	"github.com/aquasentinel/aquasentinel/internal/api/middleware"
	"github.com/aquasentinel/aquasentinel/internal/api/models"
)

func methodNotAllowed(r *http.Request) *models.Problem {
	return models.NewProblem(
		models.ProblemTypeMethodNotAllowed,
		"Method Not Allowed",
		http.StatusMethodNotAllowed,
		middleware.GetRequestID(r.Context()),
	).WithDetail(r.Method + " is not supported on " + r.URL.Path).WithInstance(r.URL.Path)
}
