package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// Client errors (4xx)
	TagNotFound       = goerr.NewTag("not_found")       // 404
	TagValidation     = goerr.NewTag("validation")      // 400
	TagInvalidRequest = goerr.NewTag("invalid_request") // 400
	TagConflict       = goerr.NewTag("conflict")        // 409

	// Server errors (5xx)
	TagInternal = goerr.NewTag("internal") // 500
	TagDatabase = goerr.NewTag("database") // 500 (specific to store errors)

	// Alert lifecycle errors
	TagDuplicateAlert    = goerr.NewTag("duplicate_alert")
	TagInvalidTransition = goerr.NewTag("invalid_transition")
	TagMaxEscalation     = goerr.NewTag("max_escalation")
)
