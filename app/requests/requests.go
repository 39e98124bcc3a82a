// Package requests holds the plain input shapes accepted by the service
// facade. Transport layers bind onto these; the facade validates them.
package requests

import "github.com/restaurant-intel/app/models"

// LookupRequest asks for one restaurant's intelligence record.
type LookupRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// RecommendRequest asks for ranked recommendations in an area. Zero values
// mean "balanced priority, any budget, default limit, no purpose/category".
type RecommendRequest struct {
	Area     string `json:"area"`
	Purpose  string `json:"purpose,omitempty"`
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty"`
	Budget   string `json:"budget,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// CompareRequest asks for a best-of analysis across 2-5 restaurants.
type CompareRequest struct {
	Restaurants []models.RestaurantRef `json:"restaurants"`
	Criteria    []string               `json:"criteria"`
}
