// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe
// mocks for the port interfaces. The mocks are generated using
// go:generate directives and provide a fluent API for setting up test
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	storage := mocks.NewMockCartStorage(ctrl)
//	storage.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil)
package mocks

// Generate mock for the CartStorage interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cart_storage_mock.go github.com/storez/storefront/internal/ports CartStorage

// Generate mock for the OrderPlacer interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=order_placer_mock.go github.com/storez/storefront/internal/ports OrderPlacer
