// Package imageload resolves the images referenced by inline markdown.
//
// A Resolver runs one resolution pass: it collects the distinct image
// references of a node sequence, fetches each one concurrently through a
// Fetcher and returns the images that loaded, keyed by source. Individual
// failures only leave their source out of the result. A Loader drives
// repeated passes for changing input and publishes only the latest one.
package imageload
