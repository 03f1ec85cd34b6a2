package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := Newf(NotFound, "no index for subject %s", "dbms")
	assert.Equal(t, NotFound, KindOf(err))

	wrapped := fmt.Errorf("loading retriever: %w", err)
	assert.Equal(t, NotFound, KindOf(wrapped))

	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(Newf(NotFound, "x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Newf(InvalidArgument, "x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Newf(UpstreamFailure, "x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(PersistenceFailure, errors.New("disk full")))
	assert.True(t, errors.Is(err, &Error{Kind: PersistenceFailure}))
	assert.False(t, errors.Is(err, &Error{Kind: NotFound}))
}
