// Package download talks to the media server and manages download tasks.
//
// Client posts JSON requests to the server's /api endpoints and interprets the
// reply: a typed APIError for failures, a plain message, or a file stream whose
// name comes from Content-Disposition. Service queues tasks, limits how many
// run at once, writes files into the downloads directory and reports progress
// through an update callback.
package download
