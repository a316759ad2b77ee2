// Package catalog turns pagination and search state into loaded entries.
//
// Reduce is a pure transition function over PageState; its Effect tells the
// caller whether to Load (network) or only re-run Display (local slice).
// Under PolicyServer each page change fetches one server page; under
// PolicyClient the collection is fetched once and paged locally.
//
// Details are expanded one request at a time in list order unless
// DetailWorkers is raised, in which case a bounded errgroup fans out and the
// results are put back in list order. Entries whose detail fetch failed are
// dropped and counted, never replaced with placeholders.
package catalog
