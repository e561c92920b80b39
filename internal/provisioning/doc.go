// Package provisioning drives the project bootstrap flow.
//
// The flow proposes a project ID (prefix + random suffix), confirms it
// with the user, and submits it for creation. A rejected creation loops
// back with a fresh suffix, indefinitely. A successful creation runs the
// finalization steps in a fixed order: set the active gcloud project,
// persist the ID, install the configured dependency, run the enabler.
// Any finalization failure is fatal.
//
// External collaborators sit behind narrow interfaces so the loop is
// tested against fakes.
package provisioning
