package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Hotel shift operations backend: per-role task schedules, recurring task tracking and handover notes",
        "title": "ShiftDesk API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Staff Login",
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "reception@hotel.example"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "changeme123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Access and refresh tokens"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Daily Schedule",
                "description": "Tasks due for a role on a given day, with status projected for that day",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "role",
                        "type": "string",
                        "enum": ["receptionist", "host", "nightshift"],
                        "required": true
                    },
                    {
                        "in": "query",
                        "name": "date",
                        "type": "string",
                        "description": "YYYY-MM-DD, defaults to today"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Tasks due on the requested day"
                    },
                    "400": {
                        "description": "Invalid role or date"
                    }
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List Task Definitions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Task definitions"}
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create Task",
                "description": "Creates a one-time or recurring task. A duplicate recurring title for the same role is accepted as a no-op.",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Task created"},
                    "200": {"description": "Recurring task already exists"}
                }
            }
        },
        "/tasks/{id}/done": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Mark Task Done",
                "description": "Records a completion for the occurrence on the given date; returns the next due date for recurring tasks",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "Completion recorded"},
                    "404": {"description": "Task not found"},
                    "409": {"description": "Task was modified by another writer"}
                }
            }
        },
        "/notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "List Handover Notes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "query",
                        "name": "date",
                        "type": "string",
                        "description": "YYYY-MM-DD, defaults to today"
                    }
                ],
                "responses": {
                    "200": {"description": "Notes for the shift date"}
                }
            },
            "post": {
                "tags": ["Notes"],
                "summary": "Post Handover Note",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Note created"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "ShiftDesk API",
	Description:      "Hotel shift operations backend",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
