// Package backend is a synchronous client for the mock task-tracker REST API.
//
// It exposes the three read endpoints the analysis needs (clients, tasks for
// a client, comments on a task). Every call blocks until the response is
// decoded; failures are returned unchanged to the caller with no retry.
package backend
