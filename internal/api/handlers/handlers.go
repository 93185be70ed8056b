package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/paulikeo/mercadito/internal/apperr"
	"github.com/paulikeo/mercadito/internal/api/respond"
)

// writeErr translates a service error into the envelope. Unclassified errors
// are logged and reported with a generic message; nothing propagates past
// the route layer.
func writeErr(w http.ResponseWriter, err error, logMsg string) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg(logMsg)
		respond.Fail(w, status, "something went wrong")
		return
	}
	respond.Fail(w, status, err.Error())
}
