// Package jobs provides scheduled background tasks for the parcel system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic reliability work the event flow depends on.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to drain committed outbox envelopes
// to the event bus
// 2. ConsolidationResumeJob - Runs every ten seconds to finish consolidation
// batches whose member updates were interrupted
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, publisher, completeHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The relay job stops a batch at the first publish failure so envelopes
// reach the bus in insertion order; the next tick retries
// - The resume job logs per-batch failures and continues with the rest
// - Failed job starts will stop any already running jobs
package jobs
