// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the request/response plumbing shared by the JSON
// feature handlers.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ktguru/project-service/internal/app/system/apierror"
)

const maxBodyBytes = 1 << 20

// Decode reads a JSON body into v. Oversized or malformed bodies come back
// as a validation error ready to render.
func Decode(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apierror.Wrap(apierror.KindValidationFailed, "invalid request body", err)
	}
	return nil
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// IDParam parses the named chi URL parameter as an ObjectID.
func IDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apierror.Validation(map[string]string{name: "must be a valid object id"})
	}
	return id, nil
}

// ID parses an ObjectID from a request-body string field.
func ID(field, value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, apierror.Validation(map[string]string{field: "must be a valid object id"})
	}
	return id, nil
}
