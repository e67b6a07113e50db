package config

/**
 * Defaults
 */

// Port a generated okik service listens on
const DefaultPort = 3000

// Root directory for persisted service manifests
const DefaultServicesRoot = ".okik/services"

// File name of the build record carrying the image reference
const DefaultImageRecordFile = "okik.build.yaml"

// Replica count when the service author does not specify one
const DefaultReplicas = 1
