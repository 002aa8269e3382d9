// Package errs defines the error types rendered to API clients.
//
// Every failure the HTTP layer can produce ends up as an *HTTPError:
//   - validation failures carry one FieldError per violated constraint
//   - malformed requests (bad JSON, unparsable UUID) carry only a message
//   - controller failures carry the controller's message verbatim
package errs
