// Package config provides configuration loading for the ringbuf tools.
//
// Config holds the retained line count, log settings and the metrics
// endpoint. Files may be JSON or YAML, chosen by extension (.yaml and .yml
// are YAML, anything else JSON). Unknown fields are rejected.
//
// Loader applies, in order: defaults, each file layer, then environment
// overrides (RINGBUF_LINES, RINGBUF_REVERSE, RINGBUF_LOG_LEVEL,
// RINGBUF_LOG_FORMAT, RINGBUF_METRICS_PORT, RINGBUF_METRICS_PATH):
//
//	loader := config.NewLoader()
//	loader.AddLayer("ringtail.yaml")
//	loader.AddLayer("ringtail.local.json") // Overrides ringtail.yaml
//	loader.EnableValidation(true)
//
//	cfg, err := loader.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Validation failures wrap errors.ErrInvalidConfig and are classified as
// invalid; a missing file wraps errors.ErrConfigNotFound.
package config
