package protocol

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service failure at the platform boundary.
type ErrorKind int

const (
	ErrPermissionDenied ErrorKind = iota // gesture gate locked
	ErrNotFound                          // unknown sound or device id
	ErrOperationFailed                   // platform reported a failure
	ErrUnsupportedFormat
	ErrNetwork
	ErrConnectionFailed
	ErrPairingFailed
	ErrServiceDiscoveryFailed
	ErrCommandTimeout
	ErrPlatform
	ErrDecode // malformed inbound payload
)

// String returns a stable name for the kind, used on the wire and in logs.
func (k ErrorKind) String() string {
	switch k {
	case ErrPermissionDenied:
		return "permission_denied"
	case ErrNotFound:
		return "not_found"
	case ErrOperationFailed:
		return "operation_failed"
	case ErrUnsupportedFormat:
		return "unsupported_format"
	case ErrNetwork:
		return "network_error"
	case ErrConnectionFailed:
		return "connection_failed"
	case ErrPairingFailed:
		return "pairing_failed"
	case ErrServiceDiscoveryFailed:
		return "service_discovery_failed"
	case ErrCommandTimeout:
		return "command_timeout"
	case ErrPlatform:
		return "platform_error"
	case ErrDecode:
		return "decode_error"
	default:
		return "unknown"
	}
}

// ServiceError is the tagged error value every bridge failure surfaces as.
// Nothing in the bridge is fatal: callers inspect Kind and decide whether
// to re-issue the operation.
type ServiceError struct {
	Kind    ErrorKind
	Subject string // sound id, device id, command — whatever the error is about
	Message string
}

func (e *ServiceError) Error() string {
	switch {
	case e.Subject != "" && e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Subject, e.Message)
	case e.Subject != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Subject)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.String()
	}
}

// NewError creates a ServiceError with the given kind and subject.
func NewError(kind ErrorKind, subject, message string) *ServiceError {
	return &ServiceError{Kind: kind, Subject: subject, Message: message}
}

// IsKind reports whether err is (or wraps) a ServiceError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == kind
}
