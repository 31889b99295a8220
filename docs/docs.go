// Package docs holds the swagger document served under /api/v1/swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/tokens": {
            "post": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue an access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/interests": {
            "get": {
                "produces": ["application/json"],
                "tags": ["interests"],
                "summary": "List interests",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/server.InterestResponse"}}}
                }
            },
            "put": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "tags": ["interests"],
                "summary": "Create an interest",
                "parameters": [{"description": "Interest", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateInterestInput"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/interests/{name}": {
            "patch": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "tags": ["interests"],
                "summary": "Change an interest description",
                "parameters": [
                    {"type": "string", "description": "Interest name", "name": "name", "in": "path", "required": true},
                    {"description": "Description", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UpdateInterestInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BasicAuth": []}],
                "tags": ["interests"],
                "summary": "Delete an interest",
                "parameters": [{"type": "string", "description": "Interest name", "name": "name", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/posts": {
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [{"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreatePostInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.CreatedPostResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Recent published posts",
                "parameters": [
                    {"type": "integer", "description": "1-indexed page", "name": "page", "in": "query"},
                    {"type": "string", "description": "space-separated interest names", "name": "interests", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/server.PostSummary"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/media": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Recent published posts with a binary payload",
                "parameters": [{"type": "integer", "description": "1-indexed page", "name": "page", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/server.PostSummary"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/all": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Every post including drafts",
                "parameters": [{"type": "integer", "description": "1-indexed page", "name": "page", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/server.PostSummary"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get a published post",
                "parameters": [{"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.PostDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "tags": ["posts"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Changes", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UpdatePostInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/followup": {
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a follow-up to a post",
                "parameters": [
                    {"type": "integer", "description": "Prior post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreatePostInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.CreatedPostResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/publisher": {
            "put": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["publishers"],
                "summary": "Create a publisher",
                "parameters": [{"description": "Publisher", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreatePublisherInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.CreatedPublisherResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "tags": ["publishers"],
                "summary": "Change the caller's email or password",
                "parameters": [{"description": "Changes", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UpdatePublisherInput"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/publisher/{id}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["publishers"],
                "summary": "Get a publisher",
                "parameters": [{"type": "integer", "description": "Publisher ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.PublisherResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "server.TokenResponse": {
            "type": "object",
            "properties": {
                "expiration": {"type": "integer"},
                "token": {"type": "string"}
            }
        },
        "server.InterestResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "server.PublisherRef": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            }
        },
        "server.PostSummary": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "dislikes": {"type": "integer"},
                "id": {"type": "integer"},
                "interests": {"type": "array", "items": {"type": "string"}},
                "likes": {"type": "integer"},
                "link": {"type": "string"},
                "published_at": {"type": "string"},
                "publisher": {"$ref": "#/definitions/server.PublisherRef"},
                "short_content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "server.PostDetail": {
            "type": "object",
            "properties": {
                "binary_content": {"type": "string", "format": "byte"},
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "dislikes": {"type": "integer"},
                "followup": {"type": "integer"},
                "id": {"type": "integer"},
                "interests": {"type": "array", "items": {"type": "string"}},
                "likes": {"type": "integer"},
                "link": {"type": "string"},
                "preview_image": {"type": "string", "format": "byte"},
                "published_at": {"type": "string"},
                "publisher": {"$ref": "#/definitions/server.PublisherRef"},
                "short_content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "server.CreatedPostResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}
            }
        },
        "server.PublisherResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "server.CreatedPublisherResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "service.CreateInterestInput": {
            "type": "object",
            "required": ["description", "name"],
            "properties": {
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "service.UpdateInterestInput": {
            "type": "object",
            "required": ["description"],
            "properties": {
                "description": {"type": "string"}
            }
        },
        "service.CreatePostInput": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "binary_content": {"type": "string"},
                "content": {"type": "string"},
                "interests": {"type": "array", "items": {"type": "string"}},
                "link": {"type": "string"},
                "preview_image": {"type": "string"},
                "publish_at": {"type": "number"},
                "short_content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "service.UpdatePostInput": {
            "type": "object",
            "properties": {
                "binary_content": {"type": "string"},
                "content": {"type": "string"},
                "dislikes": {"type": "integer"},
                "interests": {"type": "array", "items": {"type": "string"}},
                "likes": {"type": "integer"},
                "link": {"type": "string"},
                "preview_image": {"type": "string"},
                "publish_at": {"type": "number"},
                "short_content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "service.CreatePublisherInput": {
            "type": "object",
            "required": ["email", "name"],
            "properties": {
                "email": {"type": "string"},
                "full_admin": {"type": "boolean"},
                "name": {"type": "string"}
            }
        },
        "service.UpdatePublisherInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {
            "type": "basic"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pressroom API",
	Description:      "Publishing API: publishers, posts, interests and feeds.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
