// Package main hosts the outreach CLI entrypoint and command graph.
//
// The Cobra-based command tree drives the campaign workflow engine from the
// terminal: roster ingestion, stage editing and submission, image attachment,
// report retrieval, and the progress dashboard. It centralizes configuration
// resolution and engine wiring so subcommands can focus on user experience.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
