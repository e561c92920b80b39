// Package retry runs operations repeatedly with growing delays between
// attempts, for waiting out API enablement and IAM propagation.
package retry
