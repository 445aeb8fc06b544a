// Package sitepdf merges a paginated documentation site into a single
// printable document. It walks "next page" links from one or more seed
// URLs, extracts and sanitizes the content of every visited page, builds a
// cover and table of contents with run-wide unique heading ids, and hands
// the assembled HTML to a headless browser for printing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, crawl/).
package sitepdf
