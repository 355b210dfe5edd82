// Package docs registers the OpenAPI document served at /api-docs.
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
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a store admin and provision their store",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate and receive a bearer token",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/verify-email": {
            "post": {
                "tags": ["auth"],
                "summary": "Confirm a signup with the emailed OTP",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/storefront/{slug}": {
            "get": {
                "tags": ["storefront"],
                "summary": "Public store profile by slug",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/plans": {
            "get": {
                "tags": ["plans"],
                "summary": "Active subscription plans for the pricing page",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stores": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stores"],
                "summary": "List stores (superadmin)",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["stores"],
                "summary": "Create a store (superadmin)",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/delivery-methods/{id}/set-default": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["delivery-methods"],
                "summary": "Make a delivery method the store default",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Inactive methods cannot be default"}}
            }
        },
        "/payment-methods/{id}/set-default": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["payment-methods"],
                "summary": "Make a payment method the store default",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Inactive methods cannot be default"}}
            }
        },
        "/cart/checkout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["cart"],
                "summary": "Convert the open cart into an order",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Cart empty or method unavailable"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Matjarly API",
	Description:      "Multi-tenant e-commerce SaaS backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
