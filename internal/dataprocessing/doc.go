// Package dataprocessing implements the reporting core: ingestion and
// normalization of raw visit rows, the synthetic fallback dataset,
// filter resolution, and per-agent performance aggregation.
//
// Ingestion never fails the
// request path: an unreadable or empty source degrades to synthetic
// demo data, unparseable timestamps are sentinel-filled rather than
// dropped, and malformed numeric or text fields coerce to documented
// defaults. Filter resolution likewise degrades an unusable axis to
// "show all" instead of returning an error. The only failures that
// escape this package are unexpected internal ones, which the boundary
// layer turns into an error payload.
package dataprocessing
