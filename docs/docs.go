// Package docs holds the OpenAPI description served at /swagger.
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
        "/validations/run": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Run one validator against one field value and record the outcome as a validation job.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "Run a validator",
                "parameters": [
                    {"description": "Run request", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RunValidationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Recorded result", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid input or unknown validator", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "401": {"description": "Invalid token", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Job could not be recorded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/validations/run-batch": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Run up to 50 validators concurrently. Unknown validators and input errors are reported per item.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "Run several validators for one ticket",
                "parameters": [
                    {"description": "Batch request", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RunBatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "Per-item outcomes, in request order", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Job could not be recorded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/validation-jobs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Most recently finished first.",
                "produces": ["application/json"],
                "tags": ["validation-jobs"],
                "summary": "List a ticket's validation jobs",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "ticketId", "in": "query", "required": true},
                    {"type": "integer", "description": "Max jobs (default 50, max 200)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Jobs", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Missing ticketId", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Record a result produced outside the service. Timestamps are set to now.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["validation-jobs"],
                "summary": "Record a validation job",
                "parameters": [
                    {"description": "Job fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RecordJobRequest"}}
                ],
                "responses": {
                    "201": {"description": "Recorded job id", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Job could not be recorded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/tickets/{ticketId}/validation-jobs/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Download the full job history as CSV (default) or XLSX.",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["validation-jobs"],
                "summary": "Export a ticket's validation jobs",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "ticketId", "in": "path", "required": true},
                    {"type": "string", "description": "csv or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Job history", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/tickets/{ticketId}/submission-check": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Pairs each field rule with the latest job for that field and validator, then applies the submission policy.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Check whether a ticket may be submitted",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "ticketId", "in": "path", "required": true},
                    {"description": "Field definitions", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SubmissionCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "Decision and field states", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid field definitions", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/validators": {
            "get": {
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "List registered validators",
                "responses": {
                    "200": {"description": "Validator ids", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handler.RunValidationRequest": {
            "type": "object",
            "properties": {
                "context": {"type": "object"},
                "fieldId": {"type": "string", "example": "applicant_name"},
                "fieldLabel": {"type": "string", "example": "Applicant name"},
                "level": {"type": "string", "example": "hard"},
                "ticketId": {"type": "string", "example": "TCK-2024-0042"},
                "validatorId": {"type": "string", "example": "watchlist_screening"},
                "value": {"type": "string", "example": "Jane Doe"}
            }
        },
        "handler.RunBatchItemRequest": {
            "type": "object",
            "properties": {
                "context": {"type": "object"},
                "fieldId": {"type": "string", "example": "tax_id"},
                "fieldLabel": {"type": "string", "example": "Tax ID"},
                "level": {"type": "string", "example": "soft"},
                "validatorId": {"type": "string", "example": "tax_id_lookup"},
                "value": {"type": "string", "example": "DE123456789"}
            }
        },
        "handler.RunBatchRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.RunBatchItemRequest"}},
                "ticketId": {"type": "string", "example": "TCK-2024-0042"}
            }
        },
        "handler.RecordJobRequest": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"type": "string"}},
                "evidence": {"type": "object"},
                "fieldId": {"type": "string", "example": "contract"},
                "level": {"type": "string", "example": "hard"},
                "links": {"type": "array", "items": {"type": "string"}},
                "ranBy": {"type": "string", "example": "reviewer@example.com"},
                "status": {"type": "string", "example": "success"},
                "summary": {"type": "string", "example": "Document signed by all parties"},
                "ticketId": {"type": "string", "example": "TCK-2024-0042"},
                "validatorId": {"type": "string", "example": "document_signature_status"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.SubmissionCheckRequest": {
            "type": "object",
            "properties": {
                "fields": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldDefinition"}}
            }
        },
        "domain.FieldDefinition": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "label": {"type": "string"},
                "validations": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldValidationRule"}}
            }
        },
        "domain.FieldValidationRule": {
            "type": "object",
            "properties": {
                "level": {"type": "string", "enum": ["hard", "soft"]},
                "mapping": {"type": "object", "additionalProperties": {"type": "string"}},
                "validatorId": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
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
	Schemes:          []string{},
	Title:            "fieldcheck API",
	Description:      "Runs vendor validators against ticket fields, keeps an append-only job history, and decides whether a ticket may be submitted.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
