//go:build !gcloud

package config

// Validate for local builds: the dispatch URL is optional so the service
// can run against Redis alone, with scheduling disabled.
func (c *GatewayConfig) Validate() error {
	return nil
}
