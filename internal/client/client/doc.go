// Package client talks to the CodeBuddy backend over HTTP.
//
// # Overview
//
// Client is the transport-agnostic contract; HTTPClient implements it with
// net/http. HTTPClient keeps the session cookie in a cookie jar, so requests
// after Login or Register are authenticated automatically, and tags every
// request with a ULID in the X-Request-ID header.
//
// # Error Handling
//
// Responses are reduced to success or failure:
//
//   - 401 and 403 map to ErrUnauthorized;
//   - connection failures and 5xx map to ErrUnavailable;
//   - any other non-2xx becomes *ServerError carrying the payload's message.
//
// Match them with errors.Is / errors.As. Message turns any of them into text
// suitable for the terminal.
package client
