// Package todoapi provides an HTTP client for the todos REST service.
//
// # Overview
//
// The client translates four logical operations into HTTP requests against a
// configured base URL and normalizes the results:
//
//   - ListAll: GET {base}/todos
//   - Create:  POST {base}/todos with {"text": ...}
//   - Update:  PATCH {base}/todos/{id} with only the changed fields
//   - Remove:  DELETE {base}/todos/{id}
//
// Every call is exactly one round trip. There are no retries; a timeout only
// applies when the caller supplies an http.Client or context that sets one.
//
// # Client Usage
//
//	client, err := todoapi.NewClient("http://localhost:5000/api",
//		todoapi.WithLogger(logger),
//	)
//	if err != nil {
//		return fmt.Errorf("init todo client: %w", err)
//	}
//
//	item, err := client.Create(ctx, "buy milk")
//	if err != nil {
//		// errors.Is(err, todoapi.ErrRequestFailed) or todoapi.ErrInvalidResponse
//	}
//
//	item, err = client.Update(ctx, item.ID, todoapi.SetCompleted(true))
//
// # Errors
//
// Two error types cover every failure:
//
//   - *RequestFailedError: a non-2xx status or a transport failure. For error
//     responses the {"message": ...} field of the body becomes the Message;
//     an unparseable body yields "Network error". Status is zero when no
//     response arrived.
//   - *InvalidResponseError: a 2xx payload that does not carry a non-empty
//     identifier. Item payloads are checked against a JSON schema before they
//     are decoded, so malformed data never reaches callers.
//
// Errors are logged with their request context and then returned.
//
// # Observability
//
// Each call runs inside an OpenTelemetry client span named todoapi.<op>.
// Without WithTracerProvider the global provider is used, which is a no-op
// unless the application installs one.
//
// # Testing
//
// The todoapitest subpackage serves the same contract from memory and can
// queue canned responses per route.
package todoapi
