// Package model defines the scheduling domain: jobs, machines, downtime
// windows, shift constraints, assignments, schedules and their KPIs. All
// types are plain values with small derived queries and no I/O. Jobs,
// machines and constraints are inputs constructed once per optimization
// request and treated as read-only by the algorithms.
package model
