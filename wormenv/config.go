package wormenv

// This file contains functions to get the values of the wormcell environment
// variables, so every variable the module reads is catalogued in one place.

// WORMCELL_LOG_LEVEL
func WormcellLogLevel() string {
	return GetEnvString("WORMCELL_LOG_LEVEL", "INFO")
}

// WORMCELL_WRITERS, goroutines racing to set the demo cell
func WormcellWriters() uint {
	return getEnvUint[uint]("WORMCELL_WRITERS", 8)
}

// WORMCELL_READERS, handles taken before the demo cell is set
func WormcellReaders() uint {
	return getEnvUint[uint]("WORMCELL_READERS", 16)
}

// WORMCELL_STRICT, use the panicking MustSet/MustGet entry points in demos
func WormcellStrict() bool {
	return getEnvBool("WORMCELL_STRICT", false)
}

// WORMCELL_LATEBIND_VALUE
func WormcellLateBindValue() int {
	return getEnvInt("WORMCELL_LATEBIND_VALUE", 42)
}

// WORMCELL_OTEL_METRICS_NAMESPACE
func WormcellOtelMetricsNamespace() string {
	return GetEnvString("WORMCELL_OTEL_METRICS_NAMESPACE", "")
}
