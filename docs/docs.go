// Package docs serves the API description for Swagger UI.
package docs

import (
	_ "embed"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/swaggo/swag"
)

//go:embed swagger.yaml
var swaggerYAML []byte

var (
	once        sync.Once
	swaggerJSON []byte
	swaggerErr  error
)

// JSON returns the OpenAPI document converted from its YAML source.
func JSON() ([]byte, error) {
	once.Do(func() {
		swaggerJSON, swaggerErr = yaml.YAMLToJSON(swaggerYAML)
	})
	return swaggerJSON, swaggerErr
}

type doc struct{}

func (doc) ReadDoc() string {
	data, err := JSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

func init() {
	swag.Register(swag.Name, doc{})
}
