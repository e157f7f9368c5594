package errors

import (
	"errors"
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func find(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetCode returns the code of the first *Error in the chain. Plain errors
// are INTERNAL and nil is OK.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := find(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the first *Error in the chain
func GetMeta(err error) map[string]interface{} {
	if e, ok := find(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message without code prefix or cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

func hasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsNotFound reports a lookup miss
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsInvalidArgument reports a bad request or config
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsInternal reports an unexpected failure
func IsInternal(err error) bool { return hasCode(err, CodeInternal) }

// IsOutOfRange reports a value outside its allowed bounds, such as a stat stage
func IsOutOfRange(err error) bool { return hasCode(err, CodeOutOfRange) }

// IsDataIntegrity reports source data whose references do not resolve
func IsDataIntegrity(err error) bool { return hasCode(err, CodeDataIntegrity) }
