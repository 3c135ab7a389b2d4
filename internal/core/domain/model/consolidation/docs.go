// Package consolidation implements the ConsolidatedParcel aggregate: a batch
// of parcels shipped together under one record, with aggregate weight and
// volume totals and a strictly forward status machine.
package consolidation
