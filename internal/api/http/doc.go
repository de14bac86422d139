// Package http provides the REST handlers of the desktop API.
//
// Every desktop route lives under /desktops/:profile and requires the
// profile to be opened first with POST /desktops/:profile.
//
// Dialogs:
// Operations that would ask the user something (delete, uninstall, reset,
// name prompts) take the answers from the query string: ?confirm=true
// answers yes to confirmations and ?input=<text> answers prompts. The
// response carries the outcome and every dialog the operation showed:
//
//	{"outcome":"denied","applied":false,"dialogs":[{"kind":"alert","title":"Access Denied",...}]}
//
// Status codes: 200/201 for applied, cancelled and noop outcomes, 403 for
// denied, 404 for unknown ids or profiles, 400 for invalid input.
package http
