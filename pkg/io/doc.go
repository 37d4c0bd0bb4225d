// Package io reads cart and placement files and writes rendered artifacts.
//
// # Cart files
//
// A cart file lists catalog IDs and quantities. The format follows the file
// extension:
//
//	cart.json   {"items": [{"productId": 101, "quantity": 2}]}
//	cart.toml   [[items]]
//	            productId = 101
//	            quantity = 2
//	cart.yaml   items:
//	              - productId: 101
//	                quantity: 2
//
// JSON carts may also be a bare array of items. IDs are resolved against a
// catalog by the caller (see catalog.Catalog.Resolve).
//
// # Placement files
//
// Placement files are JSON as produced by the packing engine: either a bare
// array of placements or a full pack result with a "placements" field. Both
// the nested {"position", "size"} and the flat {"x", ..., "width", ...}
// placement shapes are accepted.
package io
