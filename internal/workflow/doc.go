// Package workflow is the engine facade the transport layer calls: roster
// ingestion, stage pre-population and saves, artifact attachment, and the
// progress dashboard. Every operation is a synchronous request/response
// against the injected session store; a submission either validates and
// commits whole or fails with nothing persisted.
package workflow
