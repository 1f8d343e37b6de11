// Package jobs runs the background work of the order wizard.
//
// # Available Jobs
//
//  1. ContractDocumentQueue - generates the contract document of an order
//     right after finalization has committed, on a small worker pool
//  2. DocumentRetryJob - a cron job that re-runs pending contract document
//     jobs whose earlier attempt failed or was never queued
//
// # Usage
//
//	manager := jobs.NewJobManager(queue, retryJob)
//	if err := manager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer manager.StopAll()
//
// # Delivery
//
// Generation is at-least-once. The queue drops work when its buffer is full;
// the job row stays pending and the retry job picks it up.
package jobs
