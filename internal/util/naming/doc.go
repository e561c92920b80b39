// Package naming generates candidate Google Cloud project IDs.
//
// A project ID is the configured prefix, a separator, and a random
// lowercase-alphanumeric suffix that fills the remaining length budget.
package naming
