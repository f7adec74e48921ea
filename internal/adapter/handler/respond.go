package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

// Every response body uses the same envelope.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	status, message := mapError(err)
	if status == http.StatusInternalServerError {
		// The cause stays in the log; the client gets an opaque message.
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, response{Success: false, Message: message})
}

// mapError translates domain sentinels into HTTP status codes. Anything
// unrecognized is a 500 with an opaque body.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrOrderItemNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrCartItemNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrAccountExists),
		errors.Is(err, domain.ErrProductExists),
		errors.Is(err, domain.ErrCategoryExists):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrPasswordIncorrect):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrStatusRequired),
		errors.Is(err, domain.ErrInvalidStatusValue),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidSubcategories),
		errors.Is(err, domain.ErrTooManyImages),
		errors.Is(err, domain.ErrOrderItemsRequired),
		errors.Is(err, domain.ErrItemQuantityInvalid),
		errors.Is(err, domain.ErrItemPriceInvalid),
		errors.Is(err, domain.ErrCartEmpty),
		domain.IsInvalidTransition(err):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, "internal error"
}

// decodeBody parses and validates a JSON request body. Unknown fields are
// rejected so clients cannot smuggle in attributes the endpoint does not
// accept.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
