//go:build nojsonpathregex

package function

// Built under the nojsonpathregex tag, match() and search() are simply
// never registered, so parsing a query that calls either fails type
// checking with "undefined function" exactly as it would for any other
// unknown name.
