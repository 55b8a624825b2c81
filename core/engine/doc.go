// Package engine implements the greedy assignment skeleton and its three
// policies: batching (setup minimization), rebalance (bottleneck relief)
// and baseline (naive FIFO reference). One control structure, three
// swappable policy configurations. SelectBest ranks candidate schedules by
// weighted KPI score.
package engine
