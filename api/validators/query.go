package validators

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
)

func ParseQueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// ParseQueryBool returns nil when the parameter is absent, so callers can
// tell "not filtered" apart from "filtered to false".
func ParseQueryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be boolean").WithDetails(map[string]any{"field": key})
}

func ParsePathUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").WithDetails(map[string]any{"field": field})
	}
	return id, nil
}
