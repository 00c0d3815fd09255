// Package services contains the kiosk's application services: a thin domain
// layer over client.Client that validates input before any network call,
// coalesces duplicate in-flight requests and writes the activity journal.
package services
