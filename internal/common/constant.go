// Package common contains shared constants and sentinel errors used across
// eventkeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the host
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// LocalStoragePrefix marks storage paths of photos held only in process memory.
const LocalStoragePrefix = "local/"
