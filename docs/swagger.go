// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token."
        }
    },
    "paths": {
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/projects": {
            "get": {
                "tags": ["Projects"],
                "security": [{"BearerAuth": []}],
                "summary": "List projects visible to the viewer",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Projects"],
                "security": [{"BearerAuth": []}],
                "summary": "Create a project (Leader only)",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/tasks": {
            "get": {
                "tags": ["Tasks"],
                "security": [{"BearerAuth": []}],
                "summary": "List tasks visible to the viewer",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Tasks"],
                "security": [{"BearerAuth": []}],
                "summary": "Create a task",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/team": {
            "get": {
                "tags": ["Team"],
                "security": [{"BearerAuth": []}],
                "summary": "List team members",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Team"],
                "security": [{"BearerAuth": []}],
                "summary": "Add a team member (Leader only)",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Duplicate email"}
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "security": [{"BearerAuth": []}],
                "summary": "Aggregate statistics scoped to the viewer",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "TeamTrack API",
	Description:      "API for tracking teams, projects and tasks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
