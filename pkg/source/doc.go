// Package source describes where configuration documents come from (files,
// fs.FS entries or URLs) and the Loader contract that fetches them. The
// concrete loader lives in internal/loader; construct it through the root
// hydrate package.
package source
