package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>lawfolio site API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "lawfolio-site", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Service": { "type": "object", "properties": { "id": {"type":"string"}, "title": {"type":"string"}, "description": {"type":"string"}, "icon": {"type":"string","enum":["gavel","family","business","work","bank","document","security","money"]}, "order": {"type":"integer","minimum":1}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "Message": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string"}, "email": {"type":"string"}, "phone": {"type":"string"}, "message": {"type":"string","minLength":10}, "createdAt": {"type":"string","format":"date-time"} } },
      "ValidationError": { "type": "object", "properties": { "error": {"type":"string"}, "fields": {"type":"object","additionalProperties":{"type":"string"}} } }
    }
  },
  "paths": {
    "/api/site": { "get": { "summary": "Hero, about, contact and services in one call", "responses": { "200": { "description": "site content" }, "502": { "description": "store unavailable" } } } },
    "/api/content/{key}": { "get": { "summary": "One content section (hero, about, contact)", "parameters": [{"name":"key","in":"path","required":true,"schema":{"type":"string","enum":["hero","about","contact"]}}], "responses": { "200": { "description": "typed section; empty fields when never written" }, "404": { "description": "unknown key" } } } },
    "/api/services": { "get": { "summary": "Services ordered by order ascending", "responses": { "200": { "description": "list" } } } },
    "/api/messages": { "post": { "summary": "Submit the contact form (rate limited)", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Message"} } } }, "responses": { "201": { "description": "stored" }, "400": { "description": "validation failed" }, "429": { "description": "rate limited" } } } },
    "/api/contact/vcard": { "get": { "summary": "Contact card (text/vcard, vCard 3.0)", "responses": { "200": { "description": "vCard" } } } },
    "/media/{key}": { "get": { "summary": "Stream an uploaded image", "responses": { "200": { "description": "image" }, "404": { "description": "missing" }, "503": { "description": "storage not configured" } } } },
    "/api/admin/dashboard": { "get": { "security": [{"bearer":[]}], "summary": "Counts and section completeness", "responses": { "200": { "description": "stats" } } } },
    "/api/admin/content/{key}": {
      "put": { "security": [{"bearer":[]}], "summary": "Save a full section form", "responses": { "200": { "description": "saved section" }, "400": { "description": "validation failed" } } },
      "patch": { "security": [{"bearer":[]}], "summary": "Merge some fields of a section", "responses": { "200": { "description": "saved section" }, "400": { "description": "validation failed" } } }
    },
    "/api/admin/services": {
      "get": { "security": [{"bearer":[]}], "summary": "List services", "responses": { "200": { "description": "list" } } },
      "post": { "security": [{"bearer":[]}], "summary": "Add a service", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Service"} } } }, "responses": { "201": { "description": "id" }, "400": { "description": "validation failed" } } }
    },
    "/api/admin/services/{id}": {
      "patch": { "security": [{"bearer":[]}], "summary": "Update some fields of a service", "responses": { "200": { "description": "updated" }, "404": { "description": "no such service" } } },
      "delete": { "security": [{"bearer":[]}], "summary": "Delete a service (absent ids succeed)", "responses": { "204": { "description": "deleted" } } }
    },
    "/api/admin/messages": { "get": { "security": [{"bearer":[]}], "summary": "Inbox, newest first", "responses": { "200": { "description": "list" } } } },
    "/api/admin/messages/{id}": { "delete": { "security": [{"bearer":[]}], "summary": "Delete a message (absent ids succeed)", "responses": { "204": { "description": "deleted" } } } },
    "/api/admin/uploads": { "post": { "security": [{"bearer":[]}], "summary": "Upload a jpeg/png/webp/gif up to 5 MiB (multipart file, folder=hero|about)", "responses": { "201": { "description": "key and url" }, "400": { "description": "unsupported" }, "413": { "description": "too large" }, "503": { "description": "storage not configured" } } } },
    "/api/admin/uploads/{key}": { "delete": { "security": [{"bearer":[]}], "summary": "Delete an uploaded image", "responses": { "204": { "description": "deleted" } } } },
    "/auth/login": { "post": { "summary": "Admin login with email and password", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string","minLength":6}}} } } }, "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" } } } },
    "/auth/refresh": { "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}} } } }, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } } },
    "/auth/logout": { "post": { "summary": "Logout, revoke the bearer token and the refresh session", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}} } } }, "responses": { "200": { "description": "logged out" } } } },
    "/api/v1/me": { "get": { "security": [{"bearer":[]}], "summary": "Current admin", "responses": { "200": { "description": "admin or claims" } } } },
    "/health": { "get": { "summary": "Liveness", "responses": { "200": { "description": "ok" } } } },
    "/ready": { "get": { "summary": "Readiness (store reachable)", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
