package core

// # Error Codes Reference
//
// User-facing messages carry a code that can be quoted to an operator.
// The technical error is always logged alongside the load_id.
//
// # Load Errors (LOAD001-LOAD099)
//
//	LOAD001 - Not found: The leaderboard data could not be found
//	          Action: Check LEADERBOARD_SOURCE points at a published file
//	          Patterns: "not found"
//
//	LOAD002 - Upstream rejected: The data source refused the request
//	          Action: Check the source URL and its access rules
//	          Patterns: "failed to load leaderboard data"
//
//	LOAD003 - Timeout: The data source did not answer in time
//	          Action: Try again, or raise LEADERBOARD_SOURCE_TIMEOUT
//	          Patterns: "context deadline exceeded", "timeout"
//
//	LOAD004 - Busy: Too many leaderboard loads in progress
//	          Action: Please wait a moment and try again
//	          Patterns: "too many leaderboard loads"
//
//	LOAD005 - Cancelled: The request was cancelled
//	          Action: Reload the page
//	          Patterns: "context canceled"
//
//	LOAD006 - Too large: The leaderboard file exceeds the size limit
//	          Action: Raise LEADERBOARD_MAX_BYTES or trim the file
//	          Patterns: "payload too large"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - No payload: No leaderboard has been published yet
//	        Action: Publish a payload for this board
//	        Patterns: "no published payload"
//
//	DB002 - Connection: Unable to reach the database
//	        Action: Please try again in a few moments
//	        Patterns: "connection refused", "connection reset"
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Invalid config: The leaderboard configuration is invalid
//	         Action: Fix the file named by LEADERBOARD_CONFIG
//	         Patterns: "leaderboard config", "invalid config"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// Patterns are matched case-insensitively and the first match wins, so
// specific patterns sit above general ones ("no published payload" before
// "failed to load leaderboard data").

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgTimeout = UserMessage{
		Message: "The leaderboard source did not respond in time",
		Action:  "Please try again in a few moments",
		Code:    "LOAD003",
	}
	msgConnection = UserMessage{
		Message: "Unable to reach the leaderboard database",
		Action:  "Please try again in a few moments",
		Code:    "DB002",
	}
	msgConfig = UserMessage{
		Message: "The leaderboard configuration is invalid",
		Action:  "Fix the file named by LEADERBOARD_CONFIG",
		Code:    "CFG001",
	}
)

var errorPatterns = []errorPattern{
	// Database
	{"no published payload", UserMessage{
		Message: "No leaderboard has been published yet",
		Action:  "Publish a payload for this board",
		Code:    "DB001",
	}},
	{"connection refused", msgConnection},
	{"connection reset", msgConnection},

	// Load
	{"too many leaderboard loads", UserMessage{
		Message: "The leaderboard is busy",
		Action:  "Please wait a moment and try again",
		Code:    "LOAD004",
	}},
	{"context canceled", UserMessage{
		Message: "The request was cancelled",
		Action:  "Reload the page",
		Code:    "LOAD005",
	}},
	{"context deadline exceeded", msgTimeout},
	{"timeout", msgTimeout},
	{"payload too large", UserMessage{
		Message: "The leaderboard file exceeds the size limit",
		Action:  "Raise LEADERBOARD_MAX_BYTES or trim the file",
		Code:    "LOAD006",
	}},
	{"not found", UserMessage{
		Message: "The leaderboard data could not be found",
		Action:  "Check that LEADERBOARD_SOURCE points at a published file",
		Code:    "LOAD001",
	}},
	{"failed to load leaderboard data", UserMessage{
		Message: "The leaderboard source rejected the request",
		Action:  "Check the source URL and its access rules",
		Code:    "LOAD002",
	}},

	// Configuration
	{"leaderboard config", msgConfig},
	{"invalid config", msgConfig},

	// Rate limiting
	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A nil error maps to the zero UserMessage.
//
//	msg := MapError(errors.New("Failed to load leaderboard data: Not Found"))
//	// msg.Code == "LOAD001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than
// falling through to ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err; it returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
