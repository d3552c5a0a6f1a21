// Package docs registra la especificación OpenAPI servida en /swagger.
// Se regenera con: swag init -g cmd/api/main.go -o docs
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
        "/owners": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Buscar owners por apellido",
                "parameters": [{"type": "string", "description": "Fragmento del apellido", "name": "lastName", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Alta de owner",
                "responses": {"201": {"description": "Created"}, "400": {"description": "invalid json / campos obligatorios"}}
            }
        },
        "/owners/{ownerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Detalle de owner",
                "parameters": [{"type": "integer", "description": "ID del owner", "name": "ownerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "owner not found"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Modificar owner",
                "parameters": [{"type": "integer", "description": "ID del owner", "name": "ownerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "invalid json"}, "404": {"description": "owner not found"}}
            }
        },
        "/owners/{ownerID}/pets": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Alta de mascota para un owner",
                "parameters": [{"type": "integer", "description": "ID del owner", "name": "ownerID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "invalid json / tipo desconocido / nombre duplicado"}, "404": {"description": "owner not found"}}
            }
        },
        "/owners/{ownerID}/pets/{petID}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Modificar mascota",
                "parameters": [
                    {"type": "integer", "description": "ID del owner", "name": "ownerID", "in": "path", "required": true},
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "invalid json"}, "404": {"description": "owner o mascota no encontrados"}}
            }
        },
        "/owners/{ownerID}/pets/{petID}/visits": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Registrar visita",
                "parameters": [
                    {"type": "integer", "description": "ID del owner", "name": "ownerID", "in": "path", "required": true},
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "invalid json / description obligatoria"}, "404": {"description": "pet not found"}}
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Detalle de mascota con sus visitas",
                "parameters": [{"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "pet not found"}}
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Baja de mascota",
                "parameters": [{"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/pets/{petID}/visits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Listar visitas de una mascota",
                "parameters": [{"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "pet not found"}}
            }
        },
        "/vets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Listar veterinarios",
                "parameters": [{"type": "string", "description": "Fragmento del apellido", "name": "lastName", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Alta de veterinario",
                "responses": {"201": {"description": "Created"}, "400": {"description": "invalid json / especialidad desconocida"}}
            }
        },
        "/vets/{vetID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Detalle de veterinario",
                "parameters": [{"type": "integer", "description": "ID del veterinario", "name": "vetID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "vet not found"}}
            }
        },
        "/pettypes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pettypes"],
                "summary": "Listar tipos de mascota",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pettypes"],
                "summary": "Alta de tipo de mascota",
                "responses": {"201": {"description": "Created"}, "400": {"description": "invalid json / name obligatorio"}}
            }
        },
        "/specialties": {
            "get": {
                "produces": ["application/json"],
                "tags": ["specialties"],
                "summary": "Listar especialidades",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["specialties"],
                "summary": "Alta de especialidad",
                "responses": {"201": {"description": "Created"}, "400": {"description": "invalid json / description obligatoria"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Clinic API",
	Description:      "Owners, mascotas, visitas y veterinarios de la clínica.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
