package core

// error_messages.go defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Inverted date range: Updated From must be earlier than Updated To
//	         Action: Swap the dates or clear one of them
//	         Patterns: "must be earlier than"
//
//	VAL002 - Invalid request body: The request could not be read
//	         Action: Send a JSON object with the documented fields
//	         Patterns: "invalid request body"
//
// # Record Errors (REC001-REC099)
//
//	REC001 - Record not found: One of the selected records does not exist
//	         Action: Refresh the list and select the records again
//	         Patterns: "record not found"
//
// # Integration Errors (INT001-INT099)
//
//	INT001 - Too few records: At least two records are needed
//	         Action: Select two or more records to integrate
//	         Patterns: "at least two records"
//
//	INT002 - Already integrated: A selected record is already an integration result
//	         Action: Undo the existing integration first
//	         Patterns: "already integrated"
//
//	INT003 - Not an integration: The record was not produced by an integration
//	         Action: Select an integrated record to undo
//	         Patterns: "not an integration result"
//
// # Database Errors (DB004-DB006)
//
// Raised while loading records from PostgreSQL at startup.
//
//	DB004 - Connection refused: Unable to connect to database
//	DB005 - Connection reset: Database connection was interrupted
//	DB006 - Timeout: Operation timed out
//
// # Rate Limiting (RATE001-RATE002)
//
//	RATE001 - Rate limited: Too many requests
//	RATE002 - Export busy: Too many exports are running
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// # Pattern Matching
//
// Patterns are matched case-insensitively with strings.Contains against the
// full error chain text. The first matching pattern wins.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Validation Errors (VAL001-VAL002)
	// =========================================================================
	{
		pattern: "must be earlier than",
		msg: UserMessage{
			Message: "Updated From must be earlier than Updated To.",
			Action:  "Swap the dates or clear one of them",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send a JSON object with the documented fields",
			Code:    "VAL002",
		},
	},

	// =========================================================================
	// Record and Integration Errors (REC001, INT001-INT003)
	// =========================================================================
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "One of the selected records does not exist",
			Action:  "Refresh the list and select the records again",
			Code:    "REC001",
		},
	},
	{
		pattern: "at least two records",
		msg: UserMessage{
			Message: "At least two records are needed",
			Action:  "Select two or more records to integrate",
			Code:    "INT001",
		},
	},
	{
		pattern: "already integrated",
		msg: UserMessage{
			Message: "A selected record is already an integration result",
			Action:  "Undo the existing integration first",
			Code:    "INT002",
		},
	},
	{
		pattern: "not an integration result",
		msg: UserMessage{
			Message: "The record was not produced by an integration",
			Action:  "Select an integrated record to undo",
			Code:    "INT003",
		},
	},

	// =========================================================================
	// Database Connection Errors (DB004-DB006)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001-RATE002)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "too many concurrent exports",
		msg: UserMessage{
			Message: "Too many exports are running",
			Action:  "Please wait for an export to finish and try again",
			Code:    "RATE002",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	text := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(text, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
