// Package platform contains OS integration and external tooling glue:
// download directory and filename helpers, OS open/reveal, and playlist
// title listing through the ytdlp library.
package platform
