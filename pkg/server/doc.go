// Package server serves a hash-routed application over HTTP.
//
// The server renders an app shell containing the mount element and a small
// client script. The script opens a WebSocket to /_hashroute/ws and sends
// the current location.hash on load and on every hashchange. Each
// connection is a navigation session with its own location and mount
// element; when the session's location changes the router dispatches into
// the element and the server pushes the rendered HTML back.
//
// # Wire format
//
// Client to server:
//
//	{"type":"navigate","hash":"#/users/show/42"}
//
// Server to client:
//
//	{"type":"hello","session":"6f1c..."}
//	{"type":"render","route":"user","path":"/users/show","subRoute":"42","html":"..."}
//	{"type":"error","code":"E001","message":"..."}
//
// # HTTP endpoints
//
//	GET /                 app shell
//	GET /_hashroute/ws    navigation sessions
//	GET /api/resolve      resolve ?hash= without a session
//	GET /api/routes       route table
//	GET /healthz          liveness
//	GET /metrics          Prometheus, when a metrics handler is set
package server
