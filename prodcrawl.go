// Package prodcrawl discovers product-detail pages on e-commerce domains by
// walking each domain's sitemap tree, classifying the URLs it finds, and
// persisting product URLs until a per-domain quota is reached.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, xmlquery/).
package prodcrawl
