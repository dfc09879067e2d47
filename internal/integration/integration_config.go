//go:build integration

package integration

// remoteSource is one entry of the integration configuration file: a live
// parameters document and a GTFS bundle with a shape to analyze.
type remoteSource struct {
	Name          string `json:"name"`
	ParamsURL     string `json:"params_url"`
	ParamsUser    string `json:"params_user"`
	ParamsPass    string `json:"params_pass"`
	GtfsBundleURL string `json:"gtfs_bundle_url"`
	GtfsShapeID   string `json:"gtfs_shape_id"`
}
