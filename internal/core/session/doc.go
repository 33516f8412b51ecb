// Package session holds the interactive search state: the cascading
// location form, the single search session and the autocomplete
// debouncer.
//
// State changes are pure. Update takes a State and an Event and returns
// the next State plus the Effects to run. A Runner performs those effects
// against the driving ports and feeds the outcomes back as Events, so the
// whole flow can be tested without a terminal.
package session
