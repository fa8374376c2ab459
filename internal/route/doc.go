// Package route maps navigation paths to pages and keeps the navigation
// history.
//
// Recognised paths:
//
//	/                    index (search and results)
//	/beatmapsets/{id}    index with the set overlay open
//	/about               about page
//	/dmca                DMCA notice
//
// Anything else is a not-found route.
package route
