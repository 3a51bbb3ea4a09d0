// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Request errors
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodePermissionDenied Code = "PERMISSION_DENIED"

	// Table errors
	CodeTableConfigInvalid Code = "TABLE_CONFIG_INVALID"

	// User errors
	CodeUserNameEmpty    Code = "USER_NAME_EMPTY"
	CodeUserEmailInvalid Code = "USER_EMAIL_INVALID"
	CodeUserRoleInvalid  Code = "USER_ROLE_INVALID"
	CodeUserExists       Code = "USER_EXISTS"

	// Prompt errors
	CodePromptNameEmpty      Code = "PROMPT_NAME_EMPTY"
	CodePromptVersionInvalid Code = "PROMPT_VERSION_INVALID"
	CodePromptExists         Code = "PROMPT_EXISTS"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP response statuses.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument,
		CodeUserNameEmpty,
		CodeUserEmailInvalid,
		CodeUserRoleInvalid,
		CodePromptNameEmpty,
		CodePromptVersionInvalid:
		return http.StatusBadRequest

	case CodeUnauthenticated:
		return http.StatusUnauthorized

	case CodePermissionDenied:
		return http.StatusForbidden

	case CodeNotFound:
		return http.StatusNotFound

	case CodeUserExists,
		CodePromptExists:
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
