package grpc

import (
	"errors"

	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorCodes is checked in order; the first sentinel matched by [errors.Is]
// decides the code. Anything unmatched is Internal.
var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{errMissingToken, codes.Unauthenticated},
	{errInvalidToken, codes.Unauthenticated},
	{service.ErrTokenIsExpired, codes.Unauthenticated},
	{service.ErrTokenIsExpiredOrInvalid, codes.Unauthenticated},
	{service.ErrTokenLifetimeTooLong, codes.Unauthenticated},
	{service.ErrTokenReplayed, codes.Unauthenticated},
	{service.ErrPayloadHashMismatch, codes.Unauthenticated},
	{service.ErrUnauthorized, codes.PermissionDenied},

	{service.ErrInvalidAmount, codes.InvalidArgument},
	{service.ErrInvalidDecimals, codes.InvalidArgument},
	{service.ErrInvalidVaultID, codes.InvalidArgument},
	{service.ErrAddressMismatch, codes.InvalidArgument},
	{service.ErrInvalidDataProvided, codes.InvalidArgument},

	{service.ErrVaultNotFound, codes.NotFound},
	{service.ErrReceiptTokenNotFound, codes.NotFound},
	{service.ErrAlreadyExists, codes.AlreadyExists},
	{service.ErrInsufficientBalance, codes.FailedPrecondition},
	{service.ErrWrongAsset, codes.FailedPrecondition},
	{service.ErrWrongVenue, codes.FailedPrecondition},
	{service.ErrNotSupported, codes.Unimplemented},
	{service.ErrAdapterFailure, codes.Unavailable},
}

func codeFromError(err error) codes.Code {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return codes.Internal
}

// toStatus converts err to a gRPC status. Internal failures carry no detail.
func toStatus(err error) error {
	code := codeFromError(err)
	if code == codes.Internal {
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}
