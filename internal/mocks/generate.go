// Package mocks provides mock implementations for testing the library client.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	tr := mocks.NewMockTransport(ctrl)
//	tr.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mocks for the Transport and TokenStorage interfaces from internal/ports.
// Transport: Do. TokenStorage: Load, Save, Remove.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/enicarthage/library-client/internal/ports Transport,TokenStorage
