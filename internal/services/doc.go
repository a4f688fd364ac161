// Package services implements the business logic layer of the FieldPulse
// application. It provides a clean separation between HTTP handlers and
// the data processing pipeline, ensuring that business rules are
// centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Domain-focused methods that encapsulate business rules
//
// # Available Services
//
// The package provides these core services:
//
//	- ReportService: Loads visit records, resolves filters, and
//	  aggregates per-agent performance rows
//	- HealthService: Provides system health checks
//
// # Error Handling
//
// Services return domain-specific errors that handlers can transform.
// Most degraded conditions never surface as errors at all: an unusable
// data source falls back to a synthetic data set, and unusable filter
// values degrade to the unfiltered view.
package services
