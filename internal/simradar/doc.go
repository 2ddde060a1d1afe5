// Package simradar is the composition root for the electromagnetic
// radar/LiDAR simulator: it is the only package in internal/simradar/...
// allowed to import across geom, mesh, motion, waveform, pointsim,
// raytrace, physopt, baseband, interference, rcs, and lidarsim, the same
// layering rule internal/lidar/pipeline enforces over l2frames..l6objects.
// Engine exposes the five external operations: SimRadar, SimRCS,
// SimLidar, SetFreeTier, and (via raylog) direct read-only ray-log
// access.
package simradar
