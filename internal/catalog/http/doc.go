// Package cataloghttp serves the public Catalog View: the product grid with
// search and category filter, WhatsApp order redirects and a JSON feed.
package cataloghttp
