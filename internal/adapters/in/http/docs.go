// Package http exposes the back office REST API with echo.
//
// Every route under /api except login requires a bearer token; role checks run
// per route through the casbin policy and request bodies are validated against
// the embedded OpenAPI document, which is also served at /swagger/.
//
//	@title			Logistics back office API
//	@version		1.0
//	@BasePath		/api
//	@securityDefinitions.apikey	bearerAuth
//	@in				header
//	@name			Authorization
package http

import (
	"context"
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// LoadDocument parses and validates the embedded OpenAPI document.
func LoadDocument() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiYAML)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, err
	}
	return doc, nil
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string { return d.json }

var registerOnce sync.Once

// RegisterSwagger publishes doc under the default swag instance read by
// echo-swagger. Only the first call has an effect.
func RegisterSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}
