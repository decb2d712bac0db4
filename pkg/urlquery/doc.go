// Package urlquery reads and rewrites single query parameters inside a URL
// while leaving the rest of the URL byte-for-byte intact.
//
// Unlike url.Values, a Query keeps the original order and the original text
// of every parameter it did not touch, so
//
//	urlquery.Set("https://img.example/p?b=2&a=%7E", "w", "200")
//
// yields "https://img.example/p?b=2&a=%7E&w=200" rather than a sorted and
// re-escaped query.
//
// # Value Encoding
//
// By default values are written with url.QueryEscape and read with
// url.QueryUnescape. Verbatim() disables escaping on write and reads values
// without turning '+' into a space, which is what already URL-safe payloads
// such as base64 tokens need.
package urlquery
