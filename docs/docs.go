package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "TechServe Backend",
    "description": "Lead intake, scripted sales assistant and lead triage for the TechServe website",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {
      "get": {"tags": ["health"], "summary": "Health check", "produces": ["application/json"],
        "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}}
    },
    "/api/leads": {
      "post": {"tags": ["leads"], "summary": "Submit a contact form lead",
        "consumes": ["application/json"], "produces": ["application/json"],
        "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LeadRequest"}}],
        "responses": {
          "200": {"description": "Accepted", "schema": {"$ref": "#/definitions/LeadResponse"}},
          "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/LeadResponse"}},
          "429": {"description": "Too many submissions", "schema": {"$ref": "#/definitions/LeadResponse"}},
          "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/LeadResponse"}}
        }}
    },
    "/api/chat/greeting": {
      "get": {"tags": ["chat"], "summary": "Assistant greeting", "produces": ["application/json"],
        "responses": {"200": {"description": "OK"}}}
    },
    "/api/chat/messages": {
      "post": {"tags": ["chat"], "summary": "Run one assistant turn",
        "consumes": ["application/json"], "produces": ["application/json"],
        "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}, "429": {"description": "Too many messages"}}}
    },
    "/api/chat/categories": {
      "get": {"tags": ["chat"], "summary": "Service categories", "produces": ["application/json"],
        "responses": {"200": {"description": "OK"}}}
    },
    "/api/admin/leads": {
      "get": {"tags": ["admin"], "summary": "List leads", "produces": ["application/json"],
        "parameters": [
          {"in": "header", "name": "X-Admin-Key", "type": "string", "required": true},
          {"in": "query", "name": "status", "type": "string", "enum": ["new", "contacted", "quoted", "closed"]},
          {"in": "query", "name": "q", "type": "string"},
          {"in": "query", "name": "limit", "type": "integer"},
          {"in": "query", "name": "offset", "type": "integer"}
        ],
        "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid admin key"}}}
    },
    "/api/admin/leads/{id}": {
      "get": {"tags": ["admin"], "summary": "Lead details", "produces": ["application/json"],
        "parameters": [
          {"in": "header", "name": "X-Admin-Key", "type": "string", "required": true},
          {"in": "path", "name": "id", "type": "string", "required": true}
        ],
        "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
      "patch": {"tags": ["admin"], "summary": "Update lead status or note",
        "consumes": ["application/json"], "produces": ["application/json"],
        "parameters": [
          {"in": "header", "name": "X-Admin-Key", "type": "string", "required": true},
          {"in": "path", "name": "id", "type": "string", "required": true},
          {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UpdateLeadRequest"}}
        ],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}, "404": {"description": "Not found"}}}
    }
  },
  "definitions": {
    "LeadRequest": {
      "type": "object",
      "required": ["name", "phone", "service", "location", "message", "source_page"],
      "properties": {
        "name": {"type": "string", "maxLength": 100},
        "phone": {"type": "string", "maxLength": 20},
        "email": {"type": "string", "maxLength": 255},
        "service": {"type": "string"},
        "location": {"type": "string", "maxLength": 200},
        "message": {"type": "string", "maxLength": 1000},
        "source_page": {"type": "string"},
        "preferred_contact_time": {"type": "string"},
        "honeypot": {"type": "string"}
      }
    },
    "LeadResponse": {
      "type": "object",
      "properties": {
        "success": {"type": "boolean"},
        "id": {"type": "string"},
        "error": {"type": "string"}
      }
    },
    "ChatRequest": {
      "type": "object",
      "required": ["message"],
      "properties": {
        "state": {"type": "object"},
        "message": {"type": "string", "maxLength": 500}
      }
    },
    "UpdateLeadRequest": {
      "type": "object",
      "properties": {
        "status": {"type": "string", "enum": ["new", "contacted", "quoted", "closed"]},
        "note": {"type": "string", "maxLength": 2000}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
