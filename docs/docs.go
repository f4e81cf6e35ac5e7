// Package docs holds the OpenAPI document served at /swagger/doc.json.
// It follows the layout produced by swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/debiai-data-provider/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Provider"],
                "summary": "Provider information",
                "description": "Returns the provider version, the request size limits and which deletions the client may offer.",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.InfoResponse"}}
                }
            }
        },
        "/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "List projects",
                "description": "Returns an overview of every project, keyed by name. Projects whose overview fails are left out.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/project.Overview"}}
                    }
                }
            }
        },
        "/projects/{projectId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Get project",
                "parameters": [{"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/project.Detail"}},
                    "404": {"description": "Unknown project", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Delete project",
                "parameters": [{"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "403": {"description": "Project deletion is disabled", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown project", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/projects/{projectId}/data-id-list": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Data"],
                "summary": "List sample ids",
                "description": "Returns the sample ids between positions from and to, both inclusive.",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true},
                    {"minimum": 0, "type": "integer", "description": "First position", "name": "from", "in": "query"},
                    {"minimum": 0, "type": "integer", "description": "Last position", "name": "to", "in": "query"},
                    {"type": "string", "description": "Analysis id", "name": "analysisId", "in": "query"},
                    {"type": "boolean", "description": "First page of the analysis", "name": "analysisStart", "in": "query"},
                    {"type": "boolean", "description": "Last page of the analysis", "name": "analysisEnd", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {}}},
                    "400": {"description": "Malformed query", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown project", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/projects/{projectId}/data": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Data"],
                "summary": "Get sample data",
                "description": "Returns, for each requested sample id, its values in column order.",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true},
                    {"description": "Sample ids", "name": "ids", "in": "body", "required": true, "schema": {"type": "array", "items": {}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {}}}},
                    "400": {"description": "Malformed id list", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown project or sample", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "413": {"description": "Too many ids", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/projects/{projectId}/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Models"],
                "summary": "List models",
                "parameters": [{"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/project.Model"}}},
                    "404": {"description": "Unknown project", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/projects/{projectId}/models/{modelId}": {
            "delete": {
                "tags": ["Models"],
                "summary": "Delete model",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true},
                    {"type": "string", "description": "Model id", "name": "modelId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Model deletion is disabled", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown project or model", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/projects/{projectId}/models/{modelId}/evaluated-data-id-list": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Models"],
                "summary": "List evaluated sample ids",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true},
                    {"type": "string", "description": "Model id", "name": "modelId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {}}},
                    "404": {"description": "Unknown project or model", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/projects/{projectId}/models/{modelId}/results": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Models"],
                "summary": "Get model results",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true},
                    {"type": "string", "description": "Model id", "name": "modelId", "in": "path", "required": true},
                    {"description": "Sample ids", "name": "ids", "in": "body", "required": true, "schema": {"type": "array", "items": {}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {}}}},
                    "400": {"description": "Malformed id list", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown project or model", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "413": {"description": "Too many ids", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/projects/{projectId}/selections": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Selections"],
                "summary": "List selections",
                "parameters": [{"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/project.Selection"}}},
                    "404": {"description": "Unknown project", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "tags": ["Selections"],
                "summary": "Create selection",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true},
                    {"description": "Selection", "name": "selection", "in": "body", "required": true, "schema": {"$ref": "#/definitions/project.SelectionRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Malformed selection", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown project or sample", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/projects/{projectId}/selections/{selectionId}": {
            "delete": {
                "tags": ["Selections"],
                "summary": "Delete selection",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "projectId", "in": "path", "required": true},
                    {"type": "string", "description": "Selection id", "name": "selectionId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Selection deletion is disabled", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown project or selection", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Not ready", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {},
                "request_id": {"type": "string"}
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "request_id": {"type": "string"},
                "duration_ms": {"type": "integer"}
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {"$ref": "#/definitions/api.APIMeta"}
            }
        },
        "config.CanDeleteConfig": {
            "type": "object",
            "properties": {
                "projects": {"type": "boolean"},
                "selections": {"type": "boolean"},
                "models": {"type": "boolean"}
            }
        },
        "api.InfoResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "maxSampleIdByRequest": {"type": "integer"},
                "maxSampleDataByRequest": {"type": "integer"},
                "maxResultByRequest": {"type": "integer"},
                "canDelete": {"$ref": "#/definitions/config.CanDeleteConfig"}
            }
        },
        "api.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "project.Column": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string", "enum": ["context", "groundtruth", "input", "other"]},
                "type": {"type": "string", "enum": ["auto", "text", "number", "bool", "list", "dict"]},
                "group": {"type": "string"}
            }
        },
        "project.Detail": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "columns": {"type": "array", "items": {"$ref": "#/definitions/project.Column"}},
                "expectedResults": {"type": "array", "items": {"$ref": "#/definitions/project.Column"}},
                "nbSamples": {"type": "integer"},
                "creationDate": {"type": "integer"},
                "updateDate": {"type": "integer"}
            }
        },
        "project.Model": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "nb_results": {"type": "integer"}
            }
        },
        "project.Overview": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "nbSamples": {"type": "integer"},
                "nbModels": {"type": "integer"},
                "nbSelections": {"type": "integer"},
                "creationDate": {"type": "integer"},
                "updateDate": {"type": "integer"}
            }
        },
        "project.Selection": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "nbSamples": {"type": "integer"}
            }
        },
        "project.SelectionRequest": {
            "type": "object",
            "required": ["idList", "name"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "idList": {"type": "array", "items": {}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "DebiAI Data Provider API",
	Description:      "Serves user-declared projects to the DebiAI client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
