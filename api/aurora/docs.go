// Package aurora registers the OpenAPI document served under /swagger/.
package aurora

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/aurora"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/invitesdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/invitesdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/invitesdk.HealthResponse"}}
                }
            }
        },
        "/v1/invitations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "List Invitations",
                "parameters": [
                    {"type": "string", "description": "PENDING, ACCEPTED, EXPIRED or REVOKED", "name": "status", "in": "query"},
                    {"type": "string", "description": "Case-insensitive email substring", "name": "email", "in": "query"},
                    {"type": "string", "description": "User ID of the inviter", "name": "invited_by", "in": "query"},
                    {"type": "string", "description": "RFC 3339 lower bound", "name": "created_after", "in": "query"},
                    {"type": "string", "description": "RFC 3339 upper bound", "name": "created_before", "in": "query"},
                    {"type": "integer", "description": "1-based page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitesdk.InvitationList"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Create Invitation",
                "parameters": [
                    {"description": "Invitation", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/invitesdk.CreateInvitationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/invitesdk.Invitation"}},
                    "400": {"description": "error, error_description, fields", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Accept Invitation",
                "parameters": [
                    {"description": "Token from the invitation link", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/invitesdk.AcceptInvitationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitesdk.AcceptResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Invitation Statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitesdk.InvitationStats"}}
                }
            }
        },
        "/v1/invitations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Get Invitation",
                "parameters": [
                    {"type": "string", "description": "Invitation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitesdk.Invitation"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/{id}/resend": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Resend Invitation",
                "parameters": [
                    {"type": "string", "description": "Invitation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitesdk.ActionResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/{id}/revoke": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Revoke Invitation",
                "parameters": [
                    {"type": "string", "description": "Invitation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitesdk.ActionResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/invitesdk.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "invitesdk.AcceptInvitationRequest": {
            "type": "object",
            "required": ["token"],
            "properties": {
                "token": {"type": "string", "maxLength": 64, "minLength": 32}
            }
        },
        "invitesdk.AcceptResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "tenant_id": {"type": "string"},
                "tenant_name": {"type": "string"}
            }
        },
        "invitesdk.ActionResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "invitesdk.CreateInvitationRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "client_ids": {"type": "array", "items": {"type": "string"}},
                "email": {"type": "string", "maxLength": 255},
                "message": {"type": "string", "maxLength": 1000},
                "name": {"type": "string", "maxLength": 255},
                "role_group_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "invitesdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "invitesdk.HealthChecks": {
            "type": "object",
            "properties": {
                "cache": {"type": "string"},
                "database": {"type": "string"}
            }
        },
        "invitesdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/invitesdk.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "invitesdk.Invitation": {
            "type": "object",
            "properties": {
                "accepted_at": {"type": "string"},
                "client_ids": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "expires_at": {"type": "string"},
                "id": {"type": "string"},
                "invited_by": {"type": "string"},
                "message": {"type": "string"},
                "name": {"type": "string"},
                "revoked_at": {"type": "string"},
                "revoked_by": {"type": "string"},
                "role_group_ids": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "tenant_id": {"type": "string"}
            }
        },
        "invitesdk.InvitationList": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/invitesdk.Invitation"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "pages": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "invitesdk.InvitationStats": {
            "type": "object",
            "properties": {
                "accepted": {"type": "integer"},
                "expired": {"type": "integer"},
                "pending": {"type": "integer"},
                "revoked": {"type": "integer"},
                "sent_this_week": {"type": "integer"},
                "sent_today": {"type": "integer"},
                "total": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Aurora Invitation Service API",
	Description:      "Tenant-scoped user invitations: create, list, resend, revoke and accept.\n\nEvery /v1 route requires an HS256 bearer token carrying sub, tenant_id and permissions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
