// Package warehouse contains the Warehouse aggregate and its capacity rules.
//
// A warehouse tracks a total cubic capacity and a current utilization.
// UpdateUtilization is the single mutation point for utilization: it runs
// every change through the pure NextStatus function, so FULL always means
// "utilization has reached capacity" and clears back to ACTIVE as soon as
// utilization drops. INACTIVE and MAINTENANCE are operator states set via
// OverrideStatus and are never touched by the capacity function.
//
// Every mutation yields a CapacityEvent fact so the change can be published
// downstream with its full before/after context.
package warehouse
