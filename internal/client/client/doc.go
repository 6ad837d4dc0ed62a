// Package client contains the client-side building blocks of the
// eventkeeper CLI.
//
// It provides the Client contract, a gRPC implementation (GRPCClient) that
// attaches the host access token to every call and maps gRPC statuses to
// errors callers can match with errors.Is (ErrUnavailable, ErrUnauthorized,
// common.ErrorNotFound, common.ErrorValidation), and InitDatabase, which
// opens and migrates the local SQLite cache.
package client
