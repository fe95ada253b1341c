// Package docs holds the Swagger document served at /swagger. It follows the
// layout swag emits and is regenerated with `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/simulate": {
            "get": {
                "produces": ["image/png", "image/tiff"],
                "tags": ["simulate"],
                "summary": "Render a simulated radiograph",
                "parameters": [
                    {"type": "number", "default": 200, "description": "tube current (mA)", "name": "current", "in": "query"},
                    {"type": "number", "default": 70, "description": "tube voltage (kVp)", "name": "voltage", "in": "query"},
                    {"type": "integer", "default": 256, "description": "image width (px)", "name": "width", "in": "query"},
                    {"type": "integer", "default": 256, "description": "image height (px)", "name": "height", "in": "query"},
                    {"type": "integer", "description": "reserved, ignored", "name": "seed", "in": "query"},
                    {"type": "string", "default": "png", "description": "png or tiff", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/simulate/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["simulate"],
                "summary": "Summarize a simulated radiograph",
                "parameters": [
                    {"type": "number", "default": 200, "description": "tube current (mA)", "name": "current", "in": "query"},
                    {"type": "number", "default": 70, "description": "tube voltage (kVp)", "name": "voltage", "in": "query"},
                    {"type": "integer", "default": 256, "description": "image width (px)", "name": "width", "in": "query"},
                    {"type": "integer", "default": 256, "description": "image height (px)", "name": "height", "in": "query"},
                    {"type": "integer", "description": "reserved, ignored", "name": "seed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Summary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/radiographs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["radiographs"],
                "summary": "List radiographs",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "page offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.RadiographListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["radiographs"],
                "summary": "Export a radiograph to object storage",
                "parameters": [
                    {"description": "acquisition parameters", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.renderBody"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Radiograph"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/radiographs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["radiographs"],
                "summary": "Get a radiograph",
                "parameters": [
                    {"type": "string", "description": "radiograph id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Radiograph"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["radiographs"],
                "summary": "Delete a radiograph",
                "parameters": [
                    {"type": "string", "description": "radiograph id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/radiographs/{id}/content": {
            "get": {
                "produces": ["image/png", "image/tiff"],
                "tags": ["radiographs"],
                "summary": "Stream a stored radiograph image",
                "parameters": [
                    {"type": "string", "description": "radiograph id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/radiographs/{id}/download": {
            "get": {
                "tags": ["radiographs"],
                "summary": "Download a stored radiograph",
                "parameters": [
                    {"type": "string", "description": "radiograph id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "handler.renderBody": {
            "type": "object",
            "properties": {
                "current_ma": {"type": "number"},
                "format": {"type": "string"},
                "height": {"type": "integer"},
                "seed": {"type": "integer"},
                "voltage_kvp": {"type": "number"},
                "width": {"type": "integer"}
            }
        },
        "model.Radiograph": {
            "type": "object",
            "properties": {
                "content_type": {"type": "string"},
                "created_at": {"type": "string"},
                "current_ma": {"type": "number"},
                "format": {"type": "string"},
                "height": {"type": "integer"},
                "id": {"type": "string"},
                "size": {"type": "integer"},
                "storage_path": {"type": "string"},
                "voltage_kvp": {"type": "number"},
                "width": {"type": "integer"}
            }
        },
        "service.RadiographListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Radiograph"}},
                "total": {"type": "integer"}
            }
        },
        "service.Summary": {
            "type": "object",
            "properties": {
                "center": {"type": "number"},
                "current_ma": {"type": "number"},
                "height": {"type": "integer"},
                "i0": {"type": "number"},
                "max": {"type": "number"},
                "mean": {"type": "number"},
                "min": {"type": "number"},
                "mu": {"type": "number"},
                "voltage_kvp": {"type": "number"},
                "width": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "X-ray Simulator API",
	Description:      "Beer-Lambert radiographs of a spherical phantom.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
