// Package driver runs the typesynth pipelines over loaded packages:
// load, extract, plan, generate and write for builders, and load and scan
// for the ordering check. Packages are processed in parallel.
package driver
