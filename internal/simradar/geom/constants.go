package geom

// SpeedOfLight is c in m/s, used throughout delay/Doppler/PO computations.
const SpeedOfLight = 299792458.0
