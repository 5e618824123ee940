package httpapi

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

// JSONSerializer is an echo.JSONSerializer backed by json-iterator.
type JSONSerializer struct {
	api jsoniter.API
}

// NewJSONSerializer creates a JSONSerializer that behaves like encoding/json.
func NewJSONSerializer() JSONSerializer {
	return JSONSerializer{api: jsoniter.ConfigCompatibleWithStandardLibrary}
}

// Serialize implements echo.JSONSerializer.
func (s JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := s.api.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}

	return enc.Encode(i)
}

// Deserialize implements echo.JSONSerializer.
func (s JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := s.api.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON").SetInternal(err)
	}

	return nil
}
