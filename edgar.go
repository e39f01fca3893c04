// Package edgar extracts structured fields from SEC EDGAR filing documents.
// Filings mix a colon-delimited plain-text header with embedded XML
// payloads; this package defines the records built from them (company
// identity, filing values, Form D offering data, ownership tables) and the
// interfaces used to locate and read the XML regions.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, etree/, sqlite/).
package edgar
