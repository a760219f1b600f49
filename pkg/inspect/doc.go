// Package inspect exposes a live container tree for debugging.
//
// A [Workspace] owns a tree, its view registry and the input dispatcher that
// stands in for the window. Every read and every restructuring goes through
// the workspace's lock, so the tree is mutated and updated as one step before
// the next request sees it.
//
// [Server] serves a workspace over HTTP:
//
//	GET  /healthz                          liveness
//	GET  /tree                             nested JSON snapshot
//	GET  /leaves                           leaves in pre-order
//	GET  /tree.dot                         Graphviz DOT
//	GET  /tree.svg                         rendered SVG
//	GET  /views                            registered view types
//	POST /containers/{uid}/actions/{action} run a restructuring action
//	PUT  /containers/{uid}/view            body {"view": "graph"}
//
// Errors are JSON objects with "code" and "error" fields. Invalid input maps
// to 400, unknown containers and view types to 404, anything else to 500.
package inspect
