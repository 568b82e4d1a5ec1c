package models

// SearchParams captures the search inputs shared by sources. The postcode and
// coordinates anchor distance-sorted boards like TES; ad-hoc school pages
// ignore most of these.
type SearchParams struct {
	Keywords      string
	Postcode      string
	Latitude      string
	Longitude     string
	DistanceMiles int
	Sort          string
	MaxPages      int
}
