// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/pulse/main.go`.
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
        "/projects": {
            "get": {"tags": ["project"], "summary": "List projects", "parameters": [
                {"type": "string", "name": "status", "in": "query"},
                {"type": "integer", "name": "clientId", "in": "query"},
                {"type": "integer", "name": "memberId", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["project"], "summary": "Create project", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/projects/{id}": {
            "get": {"tags": ["project"], "summary": "Get project", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["project"], "summary": "Update project", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["project"], "summary": "Delete project", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/tasks": {
            "get": {"tags": ["task"], "summary": "List tasks", "parameters": [
                {"type": "integer", "name": "projectId", "in": "query"},
                {"type": "integer", "name": "assigneeId", "in": "query"},
                {"type": "string", "name": "status", "in": "query"},
                {"type": "string", "name": "deadlineBefore", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["task"], "summary": "Create task", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/tasks/{id}": {
            "get": {"tags": ["task"], "summary": "Get task", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["task"], "summary": "Update task", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["task"], "summary": "Delete task", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/tasks/{id}/comments": {
            "get": {"tags": ["task"], "summary": "List task comments", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["task"], "summary": "Add task comment", "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}
        },
        "/users": {
            "get": {"tags": ["user"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["user"], "summary": "Create user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/users/{id}": {
            "get": {"tags": ["user"], "summary": "Get user", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["user"], "summary": "Update user", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["user"], "summary": "Delete user", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/users/{id}/avatar": {
            "get": {"tags": ["user"], "summary": "Presigned avatar URL", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}},
            "put": {"tags": ["user"], "summary": "Upload avatar", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/notifications": {
            "get": {"tags": ["notification"], "summary": "List notifications for a user", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "patch": {"tags": ["notification"], "summary": "Mark notifications read", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/time-entries": {
            "get": {"tags": ["time"], "summary": "List time entries", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "post": {"tags": ["time"], "summary": "Log time", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "401": {"description": "Unauthorized"}}}
        },
        "/analytics": {
            "get": {"tags": ["system"], "summary": "Dashboard analytics", "responses": {"200": {"description": "OK"}}}
        },
        "/activity": {
            "get": {"tags": ["system"], "summary": "Recent activity", "responses": {"200": {"description": "OK"}}}
        },
        "/system/status": {
            "get": {"tags": ["system"], "summary": "Backend status", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Issue a session token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token (e.g., \"Bearer eyJ...\")",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "ProjectPulse API",
	Description:      "Project management API with mock-data fallback.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
