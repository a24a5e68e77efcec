// Package docs holds the OpenAPI description served at /swagger/.
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
        "/activity": {
            "get": {
                "security": [{"SessionCookie": []}],
                "description": "The 50 most recent activity entries of the authenticated user, newest first.",
                "produces": ["application/json"],
                "tags": ["activity"],
                "summary": "List my activity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ActivityResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/items": {
            "get": {
                "security": [{"SessionCookie": []}],
                "description": "Live items of the authenticated user, price with two decimals and date as DD-MM-YYYY.",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List my items",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ItemsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.ActivityResponse": {
            "type": "object",
            "properties": {
                "activity": {"type": "array", "items": {"$ref": "#/definitions/model.Activity"}}
            }
        },
        "handler.ItemsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/service.ItemView"}}
            }
        },
        "model.Activity": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "item_id": {"type": "integer"},
                "message": {"type": "string"},
                "method": {"type": "string", "enum": ["signup", "login", "publish", "review", "removal"]},
                "notify": {"type": "boolean"},
                "progress": {"type": "integer"},
                "status": {"type": "string", "enum": ["completed", "pending", "failed"]},
                "user_id": {"type": "integer"}
            }
        },
        "service.ItemView": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "created": {"type": "string", "example": "09-03-2024"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "integrated_address": {"type": "string"},
                "license": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string", "example": "12.50"},
                "purchases": {"type": "integer"},
                "reviewed": {"type": "boolean"},
                "views": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "description": "Session token issued at login, sent as the trtl_session cookie or as a Bearer token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "TRTL Market API",
	Description:      "Marketplace for digital goods paid with TurtleCoin integrated addresses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
