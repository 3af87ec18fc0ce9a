// Package docgraph ingests a hierarchical documentation website and
// maintains it as a structured, linkable knowledge base. It crawls help
// pages, parses raw HTML into typed content blocks, enriches blocks with
// semantic roles and token counts, and tracks a bidirectional graph of
// inter-document references.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package docgraph
