package services

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vasudevshetty/studysyncs/apperr"
)

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondError maps taxonomy kinds to HTTP statuses; anything outside
// the taxonomy is a 500.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), errorEnvelope{
		Error: err.Error(),
		Code:  apperr.KindOf(err).String(),
	})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
