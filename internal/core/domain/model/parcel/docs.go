// Package parcel implements the Parcel aggregate: the shipment entity owned
// by the parcel lifecycle manager.
//
// A parcel carries a globally unique tracking number, the sender and
// recipient parties and addresses, validated physical dimensions, a
// free-form lifecycle status fed by tracking updates, an append-only
// tracking history, and an optional back-reference to the consolidation
// batch it belongs to.
//
// The status model is intentionally asymmetric with the consolidation batch:
// tracking updates accept any carrier-supplied status string and transitions
// are not forced forward, while batches enforce a strictly forward machine.
package parcel
