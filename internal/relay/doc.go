// Package relay validates a single uploaded file and forwards it to object
// storage, returning the public URL of the stored copy.
//
// A relay call walks a small state machine:
//
//	Idle -> Validating -> Rejected
//	                   -> Forwarding -> Succeeded
//	                                 -> Failed
//
// Every transition is logged at debug level. Failures are returned as
// *Error values whose Kind is one of the sentinel errors, so callers
// match them with errors.Is:
//
//	url, err := svc.Upload(ctx, file)
//	switch {
//	case errors.Is(err, relay.ErrFileTooLarge):
//	    // 400
//	case errors.Is(err, relay.ErrUploadFailed):
//	    // 500
//	}
package relay
