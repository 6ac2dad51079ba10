package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Results Portal API",
        "description": "Multi-tenant results management for districts, mandals and schools",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Login and session introspection"},
        {"name": "Admin", "description": "Account management and platform statistics"},
        {"name": "Entities", "description": "Districts, mandals, schools, classes, subjects, exams and students"},
        {"name": "Marks", "description": "Mark entry and bulk updates"},
        {"name": "Analytics", "description": "Performance aggregation and drill-down"},
        {"name": "Cards", "description": "Student access-card data and exports"},
        {"name": "Public", "description": "Tokenised parent-facing result lookup"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue a JWT",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current account profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/create-user": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create a subordinate account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role or jurisdiction violation", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["Admin"],
                "summary": "List accounts in jurisdiction",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "district_id", "in": "query", "type": "string"},
                    {"name": "mandal_id", "in": "query", "type": "string"},
                    {"name": "school_id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/users/{id}": {
            "put": {
                "tags": ["Admin"],
                "summary": "Update an account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Deactivate an account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deactivated"}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "tags": ["Admin"],
                "summary": "Entity counts for the caller's jurisdiction",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/entities/{type}": {
            "get": {
                "tags": ["Entities"],
                "summary": "List entities of one kind, scoped to jurisdiction",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string", "enum": ["districts", "mandals", "schools", "classes", "subjects", "exams", "students"]},
                    {"name": "district_id", "in": "query", "type": "string"},
                    {"name": "mandal_id", "in": "query", "type": "string"},
                    {"name": "school_id", "in": "query", "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown entity type", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/districts": {
            "post": {
                "tags": ["Entities"],
                "summary": "Create a district",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDistrictRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mandals": {
            "post": {
                "tags": ["Entities"],
                "summary": "Create a mandal",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMandalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools": {
            "post": {
                "tags": ["Entities"],
                "summary": "Create a school with its grade levels",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSchoolRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unregistered grade level", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "post": {
                "tags": ["Entities"],
                "summary": "Create a class record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects": {
            "post": {
                "tags": ["Entities"],
                "summary": "Create a subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams": {
            "post": {
                "tags": ["Entities"],
                "summary": "Create an exam",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "post": {
                "tags": ["Entities"],
                "summary": "Enrol a student and mint an access token",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/marks/fetch": {
            "get": {
                "tags": ["Marks"],
                "summary": "Roster with existing marks for one exam/class/subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "exam_id", "in": "query", "required": true, "type": "string"},
                    {"name": "class_id", "in": "query", "required": true, "type": "string"},
                    {"name": "school_id", "in": "query", "required": true, "type": "string"},
                    {"name": "subject_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/marks/bulk-update": {
            "post": {
                "tags": ["Marks"],
                "summary": "Upsert a batch of marks and refresh class statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkMarkUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Outside jurisdiction", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/stats": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Aggregate performance statistics for a scope",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "district_id", "in": "query", "type": "string"},
                    {"name": "mandal_id", "in": "query", "type": "string"},
                    {"name": "school_id", "in": "query", "type": "string"},
                    {"name": "exam_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/entity-performance": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-child-entity performance in the caller's scope",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "district_id", "in": "query", "type": "string"},
                    {"name": "mandal_id", "in": "query", "type": "string"},
                    {"name": "school_id", "in": "query", "type": "string"},
                    {"name": "exam_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/drill-down": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Drill one level into the hierarchy, weakest entities first",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "level", "in": "query", "type": "string", "enum": ["root", "district", "mandal"]},
                    {"name": "parent_id", "in": "query", "type": "string"},
                    {"name": "exam_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/student-marks": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-student mark grid for one school",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "school_id", "in": "query", "required": true, "type": "string"},
                    {"name": "exam_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{schoolId}/qr-data": {
            "get": {
                "tags": ["Cards"],
                "summary": "Access-card rows for one school",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "schoolId", "in": "path", "required": true, "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{schoolId}/qr-data/export.csv": {
            "get": {
                "tags": ["Cards"],
                "summary": "Download access cards as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "schoolId", "in": "path", "required": true, "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/schools/{schoolId}/qr-data/export.pdf": {
            "get": {
                "tags": ["Cards"],
                "summary": "Download access cards as PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "schoolId", "in": "path", "required": true, "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF payload"}
                }
            }
        },
        "/public/student/{token}": {
            "get": {
                "tags": ["Public"],
                "summary": "Result history for one student by access token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Result not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["username", "password", "full_name", "role"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "deo", "meo", "school_admin"]},
                "district_id": {"type": "string"},
                "mandal_id": {"type": "string"},
                "school_id": {"type": "string"}
            }
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "password": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "CreateDistrictRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "CreateMandalRequest": {
            "type": "object",
            "required": ["district_id", "name"],
            "properties": {
                "district_id": {"type": "string"},
                "name": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "CreateSchoolRequest": {
            "type": "object",
            "required": ["district_id", "mandal_id", "name", "udise_code"],
            "properties": {
                "district_id": {"type": "string"},
                "mandal_id": {"type": "string"},
                "name": {"type": "string"},
                "udise_code": {"type": "string"},
                "grade_levels": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "required": ["grade_level"],
            "properties": {
                "grade_level": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "name_telugu": {"type": "string"}
            }
        },
        "CreateExamRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "exam_type": {"type": "string"},
                "academic_year": {"type": "string"},
                "start_date": {"type": "string", "format": "date"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["school_id", "class_id", "name", "pen_number"],
            "properties": {
                "school_id": {"type": "string"},
                "class_id": {"type": "string"},
                "name": {"type": "string"},
                "name_telugu": {"type": "string"},
                "pen_number": {"type": "string"},
                "date_of_birth": {"type": "string", "format": "date"}
            }
        },
        "BulkMarkUpdateRequest": {
            "type": "object",
            "required": ["exam_id", "subject_id", "school_id", "marks_data"],
            "properties": {
                "exam_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "school_id": {"type": "string"},
                "marks_data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/MarkEntry"}
                }
            }
        },
        "MarkEntry": {
            "type": "object",
            "required": ["student_id", "marks_obtained", "max_marks"],
            "properties": {
                "student_id": {"type": "string"},
                "marks_obtained": {"type": "number"},
                "max_marks": {"type": "number"},
                "grade": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
