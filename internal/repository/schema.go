package repository

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var collectionSchema = gojsonschema.NewStringLoader(`{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "brand", "model", "year", "price"],
    "properties": {
      "id": {"type": "integer"},
      "brand": {"type": "string"},
      "model": {"type": "string"},
      "year": {"type": "integer"},
      "price": {"type": "number"},
      "image": {"type": ["string", "null"]},
      "description": {"type": ["string", "null"]},
      "isFavorite": {"type": ["boolean", "null"]}
    }
  }
}`)

// validateCollection rejects stored payloads that would decode into
// half-empty cars.
func validateCollection(data []byte) error {
	result, err := gojsonschema.Validate(collectionSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.Field()+": "+desc.Description())
	}
	return fmt.Errorf("invalid collection: %s", strings.Join(msgs, "; "))
}
