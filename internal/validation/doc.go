// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with custom validators and user-friendly error
// messages. It integrates with the application's API error format for consistent
// error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Comprehensive error translation to human-readable messages
//   - APIError conversion matching the application's error format
//   - Custom "proficiency" validator for course requirement levels
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type RatingRequest struct {
//	    UserID     string  `validate:"required"`
//	    CourseCode string  `validate:"required"`
//	    Score      float64 `validate:"required,gte=1,lte=5"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req RatingRequest
//	    if err := json.Decode(r.Body, &req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//   - proficiency: Valid proficiency level name (case-insensitive)
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - gt=n: Greater than n
//   - lt=n: Less than n
//   - min=n: Minimum value n
//   - max=n: Maximum value n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// Cross-field validations:
//   - required_without=F: Required when field F is not set
//   - excluded_with=F: Must not be set together with field F
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "100" for max=100)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []ValidationError
//	    Error()  string           // Combined message
//	    ToAPIError() *APIError    // Convert to API error format
//	}
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the application format:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "Score must be less than or equal to 5",
//	    "details": {"field": "Score", "tag": "lte", "value": 9}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "UserID: UserID is required; Score: Score must be greater than or equal to 1",
//	    "details": {
//	        "fields": [
//	            {"field": "UserID", "tag": "required", "message": "..."},
//	            {"field": "Score", "tag": "gte", "message": "..."}
//	        ]
//	    }
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required    -> "UserID is required"
//	min=1       -> "TopN must be at least 1"
//	max=50      -> "Limit must be at most 50"
//	gte=1       -> "Score must be greater than or equal to 1"
//	lte=5       -> "Score must be less than or equal to 5"
//	oneof=a b   -> "Mode must be one of: a b"
//	proficiency -> "MinLevel must be one of: beginner, intermediate, advanced, expert"
//
// # Struct Tag Examples
//
// API request validation:
//
//	type RecommendRequest struct {
//	    Profile     models.Profile `validate:"required"`
//	    TopN        int            `validate:"omitempty,min=1"`
//	    ContentOnly bool
//	}
//
// Learning path goals (exactly one of course or skill):
//
//	type PathRequest struct {
//	    GoalCourse  string `validate:"required_without=TargetSkill,excluded_with=TargetSkill"`
//	    TargetSkill string `validate:"required_without=GoalCourse"`
//	    MinLevel    string `validate:"omitempty,proficiency"`
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/api: Request handlers using validation
//   - github.com/go-playground/validator/v10: Underlying library
package validation
