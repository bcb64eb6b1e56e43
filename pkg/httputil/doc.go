// Package httputil fetches remote resolution results for composecheck.
//
// CI systems often publish the output of `./gradlew dependencies` as a build
// artifact. [Fetcher] downloads such artifacts with:
//
//   - [Retry]: bounded retry with exponential backoff for transient failures
//     (transport errors and 5xx responses); other failures return immediately
//   - [Cache]: an on-disk cache of response bodies keyed by URL, with a TTL
//
// The default cache lives in ~/.cache/composecheck/ (or $XDG_CACHE_HOME) and
// can be cleared with `composecheck cache clear`.
//
//	f := httputil.NewFetcher(cache)
//	data, err := f.Fetch(ctx, "https://ci.example.com/artifacts/deps.txt")
package httputil
