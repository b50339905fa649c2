package respond

import (
	"encoding/json"
	"net/http"

	"care-companion/internal/platform/apperr"
	"care-companion/internal/platform/logger"
)

// JSON escribe v con el status dado.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody es el cuerpo de toda respuesta de error.
type ErrorBody struct {
	Error string      `json:"error"`
	Kind  apperr.Kind `json:"kind"`
}

// Error escribe {error, kind} con el status que corresponde al kind.
// Los errores internos se loguean con el logger del request.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", map[string]any{
			"error": err.Error(),
			"path":  r.URL.Path,
		})
	}

	JSON(w, status, ErrorBody{
		Error: apperr.PublicMessage(err),
		Kind:  kind,
	})
}

// DecodeJSON decodifica el body; devuelve ValidationError si no es JSON válido.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid json", err)
	}
	return nil
}
