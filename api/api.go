// Package api embeds the service's OpenAPI document.
package api

import _ "embed"

// SwaggerJSON is the OpenAPI 2.0 description served at /swagger/doc.json.
//
//go:embed swagger/quiz.swagger.json
var SwaggerJSON []byte
