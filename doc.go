// Package lrge estimates the size of an unknown genome from a set of long
// sequencing reads by observing how often those reads overlap each other.
//
// No reference and no assembly step are needed: a subset of reads is staged
// to disk, mapped against itself (or against a second, disjoint subset)
// with minimap2's all-vs-all overlap mode, and the resulting overlap counts
// are converted into a per-read genome-size estimate. The per-read estimates
// are then aggregated into a single point estimate plus a confidence
// interval.
//
// Two strategies are provided: TwoSetStrategy, which stages two disjoint
// subsets (target and query) and maps one against the other (by default
// the subset with fewer total bases is indexed), and AvaStrategy, which
// maps a single subset against itself. Both satisfy the Estimate interface.
package lrge
