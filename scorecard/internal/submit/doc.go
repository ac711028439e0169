// Package submit sends games to tenpin-server's POST /api/v1/games endpoint.
//
// Client.Submit posts one game and decodes the scored result. Transport
// errors and 5xx responses are retried with truncated exponential backoff
// and ±25% jitter, up to max_retries times. A 4xx response is permanent: it
// is returned at once wrapped in ErrRejected and never retried.
//
// Auth follows the scorecard config: apikey mode sends the key from key_env
// in the configured header, jwt mode sends it as a bearer token, and mtls
// mode presents a client certificate. A non-zero rate_limit spaces out
// submissions.
package submit
