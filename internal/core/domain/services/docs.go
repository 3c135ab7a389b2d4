// Package services provides domain services that orchestrate business
// operations across multiple aggregates. It implements workflows that don't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - WarehouseSelector: picks the warehouse that receives a consolidation
//     batch, applying the admission threshold and destination-city filter
package services
