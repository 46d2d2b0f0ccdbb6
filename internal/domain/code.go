package domain

// Code is a wire-visible error code string. The standard codes below are
// owned by the dispatch engine; any other value is a procedure-declared code
// and passes through unaltered.
type Code string

const (
	// CodeInternal reports an internal failure inside a procedure. It is
	// always procedure-supplied; the engine never synthesizes it on its own.
	CodeInternal Code = "EINTRN"
	// CodeInvalidParams reports parameters that fail the target procedure's
	// declared parameter schema.
	CodeInvalidParams Code = "EPARAM"
	// CodeInvalidRequest reports a malformed request at any level: wrong
	// content type, undecodable body, envelope violation, unknown method.
	CodeInvalidRequest Code = "EREQST"
	// CodeResultMismatch reports, in debug mode only, a successful result
	// that fails the procedure's own declared result schema.
	CodeResultMismatch Code = "ERESLT"
	// CodeUndeclaredError reports, in debug mode only, an error code outside
	// both the standard set and the procedure's declared set.
	CodeUndeclaredError Code = "EERROR"
)

// NoError is the zero Code, meaning success.
const NoError Code = ""

// IsStandard reports whether code belongs to the engine-owned set.
func IsStandard(code Code) bool {
	switch code {
	case CodeInternal, CodeInvalidParams, CodeInvalidRequest, CodeResultMismatch, CodeUndeclaredError:
		return true
	default:
		return false
	}
}
