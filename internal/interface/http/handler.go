// Package http exposes the application facade over a JSON REST API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/internal/domain/entity"
	"github.com/stayhub/stayhub/pkg/response"
	"github.com/stayhub/stayhub/pkg/validation"
)

// bindJSON binds the request body and converts a wrong-kind JSON value into
// the domain's type mismatch error so it surfaces like any other validation
// failure.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return &entity.TypeMismatchError{Field: ute.Field, Want: ute.Type.String()}
	}
	return err
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is a 500 and gets logged with the request id.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	var verrs validator.ValidationErrors
	var tme *entity.TypeMismatchError
	var vde *entity.ValidationError
	var cfe *entity.ConflictError
	var sje *json.SyntaxError

	switch {
	case errors.As(err, &verrs), errors.As(err, &sje):
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
	case errors.As(err, &tme):
		response.Error(c, http.StatusBadRequest, "validation failed", map[string]string{tme.Field: "must be of type " + tme.Want})
	case errors.As(err, &vde):
		response.Error(c, http.StatusBadRequest, "validation failed", map[string]string{vde.Field: vde.Reason})
	case errors.As(err, &cfe):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, entity.ErrNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// canModify reports whether the authenticated caller may mutate a resource
// owned by ownerID.
func canModify(c *gin.Context, ownerID string) bool {
	return c.GetBool("isAdmin") || c.GetString("userID") == ownerID
}
