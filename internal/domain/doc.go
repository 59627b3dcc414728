// Package domain models a static set of pothole reports and the state of the
// map viewer that presents them.
//
// # Data Source
//
// Reports come from a bundled JSON file: an array of records with an integer
// id, an image path, a WGS-84 location, route and segment identifiers, an
// integer severity and a numeric timestamp. The file is read once at startup
// and never written back.
//
//	{"id": 7, "image": "frames/route12/0007.jpg",
//	 "location": {"lat": 37.7161, "lng": -122.4718},
//	 "route_id": "R12", "segment_id": "S-0042",
//	 "severity": 4, "timestamp": 1714143000}
//
// Image paths are rewritten on load so that only the final path segment is
// kept, under the configured image URL prefix ("/images/0007.jpg").
//
// # Severity
//
// Severity is an integer from 1 to 5 that selects a fixed color and label:
//
//	1 #4CAF50 Minor | 2 #8BC34A Low | 3 #FFC107 Moderate | 4 #FF9800 High | 5 #F44336 Critical
//
// Values outside the range are not rejected on load. They render with a
// neutral grey "Unknown" entry instead of failing the lookup.
//
// # Viewer State
//
// [Viewer] holds the whole viewer state: the collection, the selected record,
// the lightbox image, the map style and the map viewport. Every operation
// is serialised behind one mutex, so HTTP handlers observe the same ordering
// a single UI event loop would give. [Viewer.Snapshot] turns the state into
// the render model ([ViewState]) consumed by the HTML page and the JSON API.
//
// Notes and repair marks are log-only: they emit a log line and an
// [ActivityEvent] but never change what is rendered.
package domain
